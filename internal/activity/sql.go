package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/talentcrew/internal/store"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQL stores entries in the activity_log table of the candidate database.
type SQL struct {
	db  *store.DB
	now func() time.Time
}

var _ Log = (*SQL)(nil)

func NewSQL(db *store.DB) *SQL {
	return &SQL{db: db, now: time.Now}
}

func (s *SQL) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}

	_, err := s.db.SQL().ExecContext(ctx, s.db.Dialect().Rebind(`
INSERT INTO activity_log (id, agent, action, status, detail, created_at)
VALUES (?, ?, ?, ?, ?, ?)`),
		e.ID, e.Agent, e.Action, e.Status, e.Detail, e.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("activity: append: %w", err)
	}
	return nil
}

func (s *SQL) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.SQL().QueryContext(ctx, s.db.Dialect().Rebind(`
SELECT id, agent, action, status, detail, created_at
FROM activity_log
ORDER BY created_at DESC, id DESC
LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("activity: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Agent, &e.Action, &e.Status, &e.Detail, &ts); err != nil {
			return nil, fmt.Errorf("activity: recent: %w", err)
		}
		if e.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("activity: recent: parse time of %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity: recent: %w", err)
	}
	return out, nil
}
