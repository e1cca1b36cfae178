package db

import (
	"context"
	"encoding/json"
)

// DBTX is the common interface satisfied by both *Store and *Tx.
// Repository implementations depend on this interface instead of the
// concrete store, enabling transactional composition.
type DBTX interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Save(ctx context.Context, collection string, records []json.RawMessage) error
}

// Compile-time verification that *Store and *Tx satisfy DBTX.
var (
	_ DBTX = (*Store)(nil)
	_ DBTX = (*Tx)(nil)
)
