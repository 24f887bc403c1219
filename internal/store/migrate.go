package store

import (
	"context"
	"database/sql"
)

const schemaVersion = 1

var schema = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
  id TEXT PRIMARY KEY,
  stage TEXT NOT NULL,
  job_title TEXT NOT NULL DEFAULT '',
  attributes TEXT NOT NULL DEFAULT '{}',
  body TEXT NOT NULL DEFAULT '',
  version BIGINT NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_stage_job ON candidates(stage, job_title)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
  id TEXT PRIMARY KEY,
  agent TEXT NOT NULL,
  action TEXT NOT NULL,
  status TEXT NOT NULL,
  detail TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_log_created ON activity_log(created_at)`,
}

func migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	sqlite := dialect.Name() == DriverSQLite

	if sqlite {
		var v int
		if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
			return err
		}
		if v >= schemaVersion {
			return tx.Commit()
		}
	}

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if sqlite {
		if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
			return err
		}
	}

	return tx.Commit()
}
