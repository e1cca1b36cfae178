package testutil

import (
	"testing"

	"github.com/alexanderramin/leadflow/internal/db"
)

// NewTestStore creates a store over a fresh in-memory adapter. The store is
// closed when the test completes.
func NewTestStore(t *testing.T) *db.Store {
	t.Helper()
	store := db.NewStore(db.NewMemoryAdapter())
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewTestSQLiteStore creates a store over an in-memory SQLite database with
// all migrations applied.
func NewTestSQLiteStore(t *testing.T) *db.Store {
	t.Helper()
	adapter, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	store := db.NewStore(adapter)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewTestUoW creates a UnitOfWork backed by the given test store.
func NewTestUoW(store *db.Store) db.UnitOfWork {
	return db.NewUnitOfWork(store)
}
