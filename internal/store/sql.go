package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB is the SQL implementation of Store shared by the SQLite and Postgres drivers.
type DB struct {
	pool    *sql.DB
	dialect Dialect
	now     func() time.Time
}

var _ Store = (*DB)(nil)

// SQL exposes the connection pool to components sharing the database.
func (db *DB) SQL() *sql.DB { return db.pool }

// Dialect returns the dialect of the open database.
func (db *DB) Dialect() Dialect { return db.dialect }

func (db *DB) Close() error {
	if db == nil || db.pool == nil {
		return nil
	}
	return db.pool.Close()
}

const selectColumns = `id, stage, job_title, attributes, body, version, created_at, updated_at`

func (db *DB) Get(ctx context.Context, f Filter) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if f.Stage != "" {
		where = append(where, "stage = ?")
		args = append(args, f.Stage)
	}
	if f.JobTitle != "" {
		where = append(where, "job_title = ?")
		args = append(args, f.JobTitle)
	}

	query := `SELECT ` + selectColumns + ` FROM candidates`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.pool.QueryContext(ctx, db.dialect.Rebind(query), args...)
	if err != nil {
		return nil, wrap("get", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, wrap("get", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("get", err)
	}
	return out, nil
}

func (db *DB) GetByID(ctx context.Context, id string) (Record, error) {
	row := db.pool.QueryRowContext(ctx,
		db.dialect.Rebind(`SELECT `+selectColumns+` FROM candidates WHERE id = ?`), id)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, wrap("get by id", err)
	}
	return r, nil
}

func (db *DB) Upsert(ctx context.Context, r Record) (Record, error) {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}

	attrs, err := marshalAttributes(r.Attributes)
	if err != nil {
		return Record{}, wrap("upsert", err)
	}
	now := db.now().UTC().Format(timeLayout)

	_, err = db.pool.ExecContext(ctx, db.dialect.Rebind(`
INSERT INTO candidates (id, stage, job_title, attributes, body, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, 1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  stage = excluded.stage,
  job_title = excluded.job_title,
  attributes = excluded.attributes,
  body = excluded.body,
  version = candidates.version + 1,
  updated_at = excluded.updated_at`),
		r.ID, r.Stage, r.JobTitle, attrs, r.Body, now, now)
	if err != nil {
		return Record{}, wrap("upsert", err)
	}

	return db.GetByID(ctx, r.ID)
}

func (db *DB) Update(ctx context.Context, r Record) (Record, error) {
	attrs, err := marshalAttributes(r.Attributes)
	if err != nil {
		return Record{}, wrap("update", err)
	}
	now := db.now().UTC().Format(timeLayout)

	res, err := db.pool.ExecContext(ctx, db.dialect.Rebind(`
UPDATE candidates
SET stage = ?, job_title = ?, attributes = ?, body = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?`),
		r.Stage, r.JobTitle, attrs, r.Body, now, r.ID, r.Version)
	if err != nil {
		return Record{}, wrap("update", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Record{}, wrap("update", err)
	}
	if n == 0 {
		if _, err := db.GetByID(ctx, r.ID); err != nil {
			return Record{}, err
		}
		return Record{}, ErrVersionConflict
	}

	return db.GetByID(ctx, r.ID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		r                Record
		attrs            string
		created, updated string
	)
	if err := s.Scan(&r.ID, &r.Stage, &r.JobTitle, &attrs, &r.Body, &r.Version, &created, &updated); err != nil {
		return Record{}, err
	}

	if err := json.Unmarshal([]byte(attrs), &r.Attributes); err != nil {
		return Record{}, fmt.Errorf("decode attributes of %s: %w", r.ID, err)
	}

	var err error
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Record{}, fmt.Errorf("parse created_at of %s: %w", r.ID, err)
	}
	if r.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return Record{}, fmt.Errorf("parse updated_at of %s: %w", r.ID, err)
	}
	return r, nil
}

func marshalAttributes(attrs map[string]any) (string, error) {
	if attrs == nil {
		return "{}", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encode attributes: %w", err)
	}
	return string(data), nil
}
