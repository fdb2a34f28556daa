package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: uniqueness of (student_id, book_id) only covers open loans,
	// so a returned book can be borrowed again by the same student. Backfills
	// databases created before the index was part of the schema.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_loans_open_pair
	     ON loans(student_id, book_id) WHERE returned_at IS NULL`,
}

// Migrate ensures the schema exists and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
