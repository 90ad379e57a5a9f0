package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Single-slot key/value persistence for the worksheet and last insight.
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Reports accumulated for comparison. Never deduplicated.
	`CREATE TABLE IF NOT EXISTS batch_reports (
		id       TEXT PRIMARY KEY,
		seq      INTEGER NOT NULL,
		source   TEXT NOT NULL,
		author   TEXT NOT NULL DEFAULT '',
		format   TEXT NOT NULL DEFAULT '',
		payload  TEXT NOT NULL,
		added_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_batch_reports_seq ON batch_reports(seq)`,
}
