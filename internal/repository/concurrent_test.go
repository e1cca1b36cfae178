package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestStore creates a file-backed SQLite store in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestStore(t *testing.T) *db.Store {
	t.Helper()
	adapter, err := db.OpenSQLite(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	store := db.NewStore(adapter)
	t.Cleanup(func() { store.Close() })
	return store
}

// TestConcurrentAccess_ReadDuringWrite verifies that concurrent Query calls
// see consistent snapshots while transactional writes are in progress.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	store := newConcurrentTestStore(t)
	uow := db.NewUnitOfWork(store)
	ctx := context.Background()

	var wg sync.WaitGroup

	// Writers: 4 goroutines creating 5 leads each through the unit of work.
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				lead := testutil.NewTestLead(fmt.Sprintf("W%dL%d", writer, i))
				err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					return NewJSONLeadRepo(tx).Create(ctx, lead)
				})
				if err != nil {
					t.Errorf("writer %d: create lead %d: %v", writer, i, err)
					return
				}
			}
		}(w)
	}

	// Readers: repeatedly list leads while writes happen.
	reader := NewJSONLeadRepo(store)
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				leads, err := reader.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list leads: %v", n, err)
					return
				}
				for _, l := range leads {
					if l.ID == "" || l.Version != 1 {
						t.Errorf("reader %d: inconsistent lead %+v", n, l)
						return
					}
				}
			}
		}(r)
	}

	wg.Wait()

	leads, err := reader.List(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 20, "no writes lost")
}
