package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadRepo_CreateAndGetByID(t *testing.T) {
	store := testutil.NewTestSQLiteStore(t)
	repo := NewJSONLeadRepo(store)
	ctx := context.Background()

	lead := testutil.NewTestLead("Grace", testutil.WithCompany("Navy"))
	require.NoError(t, repo.Create(ctx, lead))
	assert.Equal(t, 1, lead.Version)

	got, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "Navy", got.Company)
	assert.Equal(t, lead.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestLeadRepo_CreateDuplicateRejected(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	lead := testutil.NewTestLead("Dup")
	require.NoError(t, repo.Create(ctx, lead))
	dup := *lead
	err := repo.Create(ctx, &dup)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestLeadRepo_GetByID_NotFound(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))

	_, err := repo.GetByID(context.Background(), "lead_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLeadRepo_UpdateBumpsVersion(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	lead := testutil.NewTestLead("Ver")
	require.NoError(t, repo.Create(ctx, lead))

	lead.Notes = "called back"
	require.NoError(t, repo.Update(ctx, lead))
	assert.Equal(t, 2, lead.Version)

	got, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "called back", got.Notes)
	assert.Equal(t, 2, got.Version)
}

func TestLeadRepo_UpdateStaleVersionConflicts(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	lead := testutil.NewTestLead("Stale")
	require.NoError(t, repo.Create(ctx, lead))

	first, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)

	first.Notes = "first writer"
	require.NoError(t, repo.Update(ctx, first))

	second.Notes = "second writer"
	err = repo.Update(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 1, second.Version, "version untouched on conflict")

	got, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", got.Notes)
}

func TestLeadRepo_UpdateAndDeleteUnknown(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	err := repo.Update(ctx, testutil.NewTestLead("Ghost"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = repo.Delete(ctx, "lead_ghost")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLeadRepo_Delete(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	a := testutil.NewTestLead("A")
	b := testutil.NewTestLead("B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Delete(ctx, a.ID))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestLeadRepo_SkipsUndecodableRecords(t *testing.T) {
	mem := db.NewMemoryAdapter()
	mem.SetRaw(db.CollectionLeads, []byte(`[{"id":"lead_ok","firstName":"Ok","version":1},{"id":42,"firstName":[]}]`))
	repo := NewJSONLeadRepo(db.NewStore(mem))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "lead_ok", all[0].ID)
}

func TestLeadRepo_CorruptCollectionLoadsEmpty(t *testing.T) {
	mem := db.NewMemoryAdapter()
	mem.SetRaw(db.CollectionLeads, []byte(`this is not json`))
	repo := NewJSONLeadRepo(db.NewStore(mem))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLeadRepo_Query(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("Alice",
		testutil.WithLeadStatus(domain.LeadQualified), testutil.WithCompany("Contoso"),
		testutil.WithLeadCreatedAt(base))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("Bob",
		testutil.WithLeadStatus(domain.LeadQualified),
		testutil.WithLeadCreatedAt(base.Add(time.Hour)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("Carol",
		testutil.WithLeadStatus(domain.LeadNew), testutil.WithCompany("Contoso Movers"),
		testutil.WithLeadCreatedAt(base.Add(2*time.Hour)))))

	page, err := repo.Query(ctx, query.Query{Filters: map[string]string{"status": "qualified"}})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Bob", page.Data[0].FirstName, "newest first by default")

	page, err = repo.Query(ctx, query.Query{Search: "contoso", SortBy: "firstName", SortOrder: query.Asc})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Alice", page.Data[0].FirstName)
	assert.Equal(t, "Carol", page.Data[1].FirstName)

	_, err = repo.Query(ctx, query.Query{Filters: map[string]string{"colour": "red"}})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

// failingAdapter fails every call with an IO error.
type failingAdapter struct{}

func (failingAdapter) Get(context.Context, string) ([]json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func (failingAdapter) Set(context.Context, string, []json.RawMessage) error {
	return errors.New("connection refused")
}

func (failingAdapter) Close() error { return nil }

func TestLeadRepo_StorageFailureIsPersistenceError(t *testing.T) {
	repo := NewJSONLeadRepo(db.NewStore(failingAdapter{}))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Contains(t, err.Error(), "connection refused")
}
