package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryAdapter keeps encoded collections in process memory. Payloads are
// stored as bytes so reads never alias the caller's slices.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

func (m *MemoryAdapter) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.RLock()
	payload, ok := m.data[collection]
	m.mu.RUnlock()
	if !ok {
		return []json.RawMessage{}, nil
	}
	return decodeCollection(ctx, collection, payload), nil
}

func (m *MemoryAdapter) Set(_ context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	m.mu.Lock()
	m.data[collection] = payload
	m.mu.Unlock()
	return nil
}

// SetBatch encodes every collection first and then swaps them in under one
// lock, so readers see all or none of the batch.
func (m *MemoryAdapter) SetBatch(_ context.Context, batch map[string][]json.RawMessage) error {
	encoded := make(map[string][]byte, len(batch))
	for name, records := range batch {
		payload, err := encodeCollection(records)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		encoded[name] = payload
	}
	m.mu.Lock()
	for name, payload := range encoded {
		m.data[name] = payload
	}
	m.mu.Unlock()
	return nil
}

// SetRaw stores an arbitrary payload for a collection. Tests use it to
// simulate corrupted storage.
func (m *MemoryAdapter) SetRaw(collection string, payload []byte) {
	m.mu.Lock()
	m.data[collection] = append([]byte(nil), payload...)
	m.mu.Unlock()
}

func (m *MemoryAdapter) Close() error { return nil }
