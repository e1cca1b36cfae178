package query

import (
	"strings"

	"github.com/alexanderramin/leadflow/internal/domain"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultSortBy = "createdAt"
)

// Query describes a filtered, sorted, paginated read over one collection.
type Query struct {
	Filters   map[string]string `json:"filters,omitempty"`
	Search    string            `json:"search,omitempty"`
	SortBy    string            `json:"sortBy,omitempty"`
	SortOrder SortOrder         `json:"sortOrder,omitempty"`
	Page      int               `json:"page,omitempty"`
	Limit     int               `json:"limit,omitempty"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Page is one page of results. Data is never nil.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Normalize applies defaults and bounds. Page values below 1 become 1 and
// the limit is clamped to MaxLimit. An unknown sort order is rejected.
func Normalize(q Query) (Query, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if strings.TrimSpace(q.SortBy) == "" {
		q.SortBy = DefaultSortBy
	}
	switch SortOrder(strings.ToLower(string(q.SortOrder))) {
	case "":
		q.SortOrder = Desc
	case Asc:
		q.SortOrder = Asc
	case Desc:
		q.SortOrder = Desc
	default:
		return q, domain.NewValidationError("invalid query",
			domain.FieldError{Field: "sortOrder", Msg: "must be asc or desc"})
	}
	q.Search = strings.TrimSpace(q.Search)
	return q, nil
}

// WithFilter returns a copy of q with key set to value. An empty value
// removes the filter.
func (q Query) WithFilter(key, value string) Query {
	next := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		next[k] = v
	}
	if value == "" {
		delete(next, key)
	} else {
		next[key] = value
	}
	q.Filters = next
	return q
}
