package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL
	)`,
	`ALTER TABLE collections ADD COLUMN schema_version INTEGER NOT NULL DEFAULT 1`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS leadflow_collections (
		name           TEXT PRIMARY KEY,
		data           JSONB NOT NULL DEFAULT '[]'::jsonb,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		schema_version INTEGER NOT NULL DEFAULT 1
	)`,
}
