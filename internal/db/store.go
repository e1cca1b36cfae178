package db

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is the single logical writer over an Adapter. Every write, direct
// or transactional, holds the writer lock; reads go straight to the adapter.
type Store struct {
	adapter Adapter
	mu      sync.Mutex
}

func NewStore(a Adapter) *Store {
	return &Store{adapter: a}
}

// Adapter returns the underlying backend.
func (s *Store) Adapter() Adapter { return s.adapter }

func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	return s.adapter.Get(ctx, collection)
}

func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter.Set(ctx, collection, records)
}

func (s *Store) Close() error { return s.adapter.Close() }
