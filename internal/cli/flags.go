package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// queryFlags are the list flags shared by every collection.
type queryFlags struct {
	page      int
	limit     int
	search    string
	sortBy    string
	sortOrder string
	filters   []string
}

func (q *queryFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&q.page, "page", query.DefaultPage, "Page number (1-based)")
	fs.IntVar(&q.limit, "limit", query.DefaultLimit, "Page size")
	fs.StringVar(&q.search, "search", "", "Case-insensitive text search")
	fs.StringVar(&q.sortBy, "sort-by", "", "Field to sort by (default createdAt)")
	fs.StringVar(&q.sortOrder, "order", "", "Sort order: asc or desc")
	fs.StringArrayVar(&q.filters, "filter", nil, "Exact-match filter as key=value (repeatable)")
}

// build turns the flags into a query. Malformed filters are validation errors.
func (q *queryFlags) build() (query.Query, error) {
	out := query.Query{
		Search:    q.search,
		SortBy:    q.sortBy,
		SortOrder: query.SortOrder(q.sortOrder),
		Page:      q.page,
		Limit:     q.limit,
	}
	var bad []domain.FieldError
	for _, f := range q.filters {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			bad = append(bad, domain.FieldError{Field: "filter", Msg: "expected key=value, got " + f})
			continue
		}
		out = out.WithFilter(key, strings.TrimSpace(value))
	}
	if len(bad) > 0 {
		return out, domain.NewValidationError("invalid filter", bad...)
	}
	return out, nil
}

// parseDate parses a YYYY-MM-DD flag value. Empty input yields nil.
func parseDate(flag, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, domain.NewValidationError("invalid date",
			domain.FieldError{Field: flag, Msg: "expected YYYY-MM-DD"})
	}
	return &t, nil
}

// splitTags splits a comma-separated tag list, dropping blanks.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// changed reports whether the named flag was set on the command line.
func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
