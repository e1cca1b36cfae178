package db

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultTimeout bounds a single storage call when none is configured.
const DefaultTimeout = 5 * time.Second

// WithTimeout wraps a so every call runs under a context deadline of d.
// Atomic batching is preserved when a implements Batcher.
func WithTimeout(a Adapter, d time.Duration) Adapter {
	if d <= 0 {
		d = DefaultTimeout
	}
	t := timeoutAdapter{inner: a, d: d}
	if b, ok := a.(Batcher); ok {
		return &timeoutBatchAdapter{timeoutAdapter: t, batcher: b}
	}
	return &t
}

type timeoutAdapter struct {
	inner Adapter
	d     time.Duration
}

func (t *timeoutAdapter) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Get(ctx, collection)
}

func (t *timeoutAdapter) Set(ctx context.Context, collection string, records []json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Set(ctx, collection, records)
}

func (t *timeoutAdapter) Close() error { return t.inner.Close() }

type timeoutBatchAdapter struct {
	timeoutAdapter
	batcher Batcher
}

func (t *timeoutBatchAdapter) SetBatch(ctx context.Context, batch map[string][]json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.batcher.SetBatch(ctx, batch)
}
