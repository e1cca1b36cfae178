package query

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID      string
	Status  string
	Name    string
	Amount  float64
	Created time.Time
	Due     *time.Time
}

var rowFields = Fields[row]{
	Categorical: map[string]func(row) string{
		"status": func(r row) string { return r.Status },
	},
	Text: []func(row) string{
		func(r row) string { return r.Name },
	},
	Sort: map[string]SortKey[row]{
		"createdAt": ByDate(func(r row) *time.Time { return TimePtr(r.Created) }),
		"dueDate":   ByDate(func(r row) *time.Time { return r.Due }),
		"amount":    ByNumber(func(r row) float64 { return r.Amount }),
		"name":      ByText(func(r row) string { return r.Name }),
	},
}

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func makeRows(n int) []row {
	out := make([]row, n)
	for i := range out {
		status := "open"
		if i%2 == 1 {
			status = "closed"
		}
		out[i] = row{
			ID:      fmt.Sprintf("r%02d", i),
			Status:  status,
			Name:    fmt.Sprintf("Row %d", i),
			Amount:  float64(i * 10),
			Created: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestApply_DefaultsNewestFirst(t *testing.T) {
	page, err := Apply(makeRows(3), Query{}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"r02", "r01", "r00"}, ids(page.Data))
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 3, TotalPages: 1}, page.Pagination)
}

func TestApply_TwentyFiveRecordsPageThree(t *testing.T) {
	page, err := Apply(makeRows(25), Query{Page: 3, Limit: 10}, rowFields)
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestApply_PageBeyondEndIsEmptyNotNil(t *testing.T) {
	page, err := Apply(makeRows(5), Query{Page: 4, Limit: 2}, rowFields)
	require.NoError(t, err)
	require.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
	assert.Equal(t, 5, page.Pagination.Total)
}

func TestApply_HugePageIsEmpty(t *testing.T) {
	page, err := Apply(makeRows(3), Query{Page: math.MaxInt, Limit: 10}, rowFields)
	require.NoError(t, err)
	require.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, math.MaxInt, page.Pagination.Page)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.True(t, page.Pagination.HasPrev)
}

func TestApply_EmptyCollection(t *testing.T) {
	page, err := Apply(nil, Query{}, rowFields)
	require.NoError(t, err)
	require.NotNil(t, page.Data)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestApply_LimitBounds(t *testing.T) {
	page, err := Apply(makeRows(150), Query{Limit: 500, Page: -3}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, page.Pagination.Limit)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Len(t, page.Data, 100)
}

func TestApply_FilterAndSearch(t *testing.T) {
	rows := makeRows(12)
	page, err := Apply(rows, Query{Filters: map[string]string{"status": "closed"}, SortBy: "amount", SortOrder: Asc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r03", "r05", "r07", "r09", "r11"}, ids(page.Data))
	assert.Equal(t, 6, page.Pagination.Total)

	page, err = Apply(rows, Query{Search: "ROW 1", SortBy: "name", SortOrder: Asc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r10", "r11"}, ids(page.Data))
}

func TestApply_EmptyFilterValueIgnored(t *testing.T) {
	page, err := Apply(makeRows(4), Query{Filters: map[string]string{"status": ""}}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Pagination.Total)
}

func TestApply_UnknownFilterOrSortRejected(t *testing.T) {
	_, err := Apply(makeRows(2), Query{Filters: map[string]string{"colour": "red"}}, rowFields)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, "colour", domain.FieldsOf(err)[0].Field)

	_, err = Apply(makeRows(2), Query{SortBy: "shoeSize"}, rowFields)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = Apply(makeRows(2), Query{SortOrder: "sideways"}, rowFields)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestApply_MissingDatesLastBothDirections(t *testing.T) {
	d1 := base.Add(24 * time.Hour)
	d2 := base.Add(48 * time.Hour)
	rows := []row{
		{ID: "none1"},
		{ID: "late", Due: &d2},
		{ID: "none2"},
		{ID: "early", Due: &d1},
	}
	page, err := Apply(rows, Query{SortBy: "dueDate", SortOrder: Asc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "none1", "none2"}, ids(page.Data))

	page, err = Apply(rows, Query{SortBy: "dueDate", SortOrder: Desc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early", "none1", "none2"}, ids(page.Data))
}

func TestApply_StableOnTies(t *testing.T) {
	rows := []row{{ID: "a", Amount: 5}, {ID: "b", Amount: 5}, {ID: "c", Amount: 1}}
	page, err := Apply(rows, Query{SortBy: "amount", SortOrder: Desc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(page.Data))
}

func TestApply_TextSortCaseInsensitive(t *testing.T) {
	rows := []row{{ID: "1", Name: "beta"}, {ID: "2", Name: "Alpha"}, {ID: "3", Name: "gamma"}}
	page, err := Apply(rows, Query{SortBy: "name", SortOrder: Asc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, ids(page.Data))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rows := makeRows(3)
	_, err := Apply(rows, Query{SortBy: "amount", SortOrder: Desc}, rowFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"r00", "r01", "r02"}, ids(rows))
}

func TestWithFilter(t *testing.T) {
	q := Query{}.WithFilter("status", "open")
	assert.Equal(t, "open", q.Filters["status"])
	q2 := q.WithFilter("status", "")
	assert.NotContains(t, q2.Filters, "status")
	assert.Equal(t, "open", q.Filters["status"], "original untouched")
}
