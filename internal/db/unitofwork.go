package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// StoreUnitOfWork implements UnitOfWork over a Store.
type StoreUnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a UnitOfWork backed by the given store.
func NewUnitOfWork(store *Store) *StoreUnitOfWork {
	return &StoreUnitOfWork{store: store}
}

// Tx stages writes in memory until commit. Loads see the transaction's own
// staged writes.
type Tx struct {
	adapter Adapter
	staged  map[string][]json.RawMessage
	order   []string
}

func (t *Tx) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if records, ok := t.staged[collection]; ok {
		return cloneRecords(records), nil
	}
	return t.adapter.Get(ctx, collection)
}

func (t *Tx) Save(_ context.Context, collection string, records []json.RawMessage) error {
	if _, ok := t.staged[collection]; !ok {
		t.order = append(t.order, collection)
	}
	t.staged[collection] = cloneRecords(records)
	return nil
}

func (u *StoreUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &Tx{adapter: u.store.adapter, staged: make(map[string][]json.RawMessage)}

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.order) == 0 {
		return nil
	}
	if err := tx.commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (t *Tx) commit(ctx context.Context) error {
	if b, ok := t.adapter.(Batcher); ok {
		return b.SetBatch(ctx, t.staged)
	}
	return t.commitSaga(ctx)
}

type collectionSnapshot struct {
	collection string
	records    []json.RawMessage
}

// commitSaga writes collections in staging order. If one write fails, every
// collection already written is restored to its pre-transaction contents.
func (t *Tx) commitSaga(ctx context.Context) error {
	var written []collectionSnapshot
	for _, name := range t.order {
		before, err := t.adapter.Get(ctx, name)
		if err != nil {
			return errors.Join(err, t.compensate(ctx, written))
		}
		if err := t.adapter.Set(ctx, name, t.staged[name]); err != nil {
			return errors.Join(err, t.compensate(ctx, written))
		}
		written = append(written, collectionSnapshot{collection: name, records: before})
	}
	return nil
}

func (t *Tx) compensate(ctx context.Context, written []collectionSnapshot) error {
	var errs []error
	for i := len(written) - 1; i >= 0; i-- {
		w := written[i]
		if err := t.adapter.Set(ctx, w.collection, w.records); err != nil {
			slog.ErrorContext(ctx, "compensating write failed", "collection", w.collection, "error", err)
			errs = append(errs, fmt.Errorf("restoring %s: %w", w.collection, err))
		}
	}
	return errors.Join(errs...)
}
