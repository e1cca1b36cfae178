package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const upsertCollectionSQL = `INSERT INTO collections (name, data, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

// SQLiteAdapter stores each collection as one row of the collections table.
type SQLiteAdapter struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and runs migrations automatically.
func OpenSQLite(path string) (*SQLiteAdapter, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteAdapter{db: db}, nil
}

func (s *SQLiteAdapter) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, collection).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", collection, err)
	}
	return decodeCollection(ctx, collection, []byte(payload)), nil
}

func (s *SQLiteAdapter) Set(ctx context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertCollectionSQL, collection, string(payload), nowUTC()); err != nil {
		return fmt.Errorf("saving %s: %w", collection, err)
	}
	return nil
}

// SetBatch writes every collection in one SQL transaction.
func (s *SQLiteAdapter) SetBatch(ctx context.Context, batch map[string][]json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	stamp := nowUTC()
	for name, records := range batch {
		payload, err := encodeCollection(records)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, upsertCollectionSQL, name, string(payload), stamp); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
			return fmt.Errorf("saving %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteAdapter) Close() error { return s.db.Close() }

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
