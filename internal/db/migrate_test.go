package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteAdapter {
	t.Helper()
	a, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestMigrate_Idempotent(t *testing.T) {
	a := openTestSQLite(t)

	// Run migrations a second time; should succeed without error.
	require.NoError(t, Migrate(a.db))
	require.NoError(t, Migrate(a.db))
}

func TestMigrate_CreatesCollectionsTable(t *testing.T) {
	a := openTestSQLite(t)

	var name string
	err := a.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='collections'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "collections", name)

	var version int
	_, err = a.db.Exec(`INSERT INTO collections (name, updated_at) VALUES ('probe', 'now')`)
	require.NoError(t, err)
	require.NoError(t, a.db.QueryRow(`SELECT schema_version FROM collections WHERE name='probe'`).Scan(&version))
	assert.Equal(t, 1, version)
}
