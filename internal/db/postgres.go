package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertPostgresSQL = `INSERT INTO leadflow_collections (name, data, updated_at)
	VALUES ($1, $2::jsonb, now())
	ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

// PostgresAdapter stores each collection as a JSONB row.
type PostgresAdapter struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool, verifies it with a ping, and ensures the
// collections table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresAdapter, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if poolCfg.MaxConns == 0 || poolCfg.MaxConns > 10 {
		poolCfg.MaxConns = 10
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	for i, stmt := range postgresMigrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres migration %d: %w", i, err)
		}
	}
	return &PostgresAdapter{pool: pool}, nil
}

func (p *PostgresAdapter) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM leadflow_collections WHERE name = $1`, collection).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", collection, err)
	}
	return decodeCollection(ctx, collection, payload), nil
}

func (p *PostgresAdapter) Set(ctx context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	if _, err := p.pool.Exec(ctx, upsertPostgresSQL, collection, string(payload)); err != nil {
		return fmt.Errorf("saving %s: %w", collection, err)
	}
	return nil
}

// SetBatch writes every collection inside one Postgres transaction.
func (p *PostgresAdapter) SetBatch(ctx context.Context, batch map[string][]json.RawMessage) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for name, records := range batch {
			payload, err := encodeCollection(records)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", name, err)
			}
			if _, err := tx.Exec(ctx, upsertPostgresSQL, name, string(payload)); err != nil {
				return fmt.Errorf("saving %s: %w", name, err)
			}
		}
		return nil
	})
}

func (p *PostgresAdapter) Close() error {
	p.pool.Close()
	return nil
}
