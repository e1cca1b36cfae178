package query

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
)

type SortKind int

const (
	SortText SortKind = iota
	SortNumber
	SortDate
)

// SortKey extracts a comparable value of one kind from a record.
type SortKey[T any] struct {
	Kind   SortKind
	Text   func(T) string
	Number func(T) float64
	Date   func(T) *time.Time
}

func ByText[T any](f func(T) string) SortKey[T] {
	return SortKey[T]{Kind: SortText, Text: f}
}

func ByNumber[T any](f func(T) float64) SortKey[T] {
	return SortKey[T]{Kind: SortNumber, Number: f}
}

func ByDate[T any](f func(T) *time.Time) SortKey[T] {
	return SortKey[T]{Kind: SortDate, Date: f}
}

// Fields declares which fields of T can be filtered, searched and sorted.
type Fields[T any] struct {
	Categorical map[string]func(T) string
	Text        []func(T) string
	Sort        map[string]SortKey[T]
}

// Check normalizes q and rejects sort fields and filter keys the collection
// does not declare.
func (f Fields[T]) Check(q Query) (Query, error) {
	q, err := Normalize(q)
	if err != nil {
		return q, err
	}
	if _, ok := f.Sort[q.SortBy]; !ok {
		return q, domain.NewValidationError("invalid query",
			domain.FieldError{Field: "sortBy", Msg: "unknown sort field " + q.SortBy})
	}
	var unknown []domain.FieldError
	for name := range q.Filters {
		if _, ok := f.Categorical[name]; !ok {
			unknown = append(unknown, domain.FieldError{Field: name, Msg: "unknown filter"})
		}
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i].Field < unknown[j].Field })
		return q, domain.NewValidationError("invalid query", unknown...)
	}
	return q, nil
}

// Apply filters, sorts and paginates items. The input slice is not
// modified.
func Apply[T any](items []T, q Query, f Fields[T]) (Page[T], error) {
	q, err := f.Check(q)
	if err != nil {
		return Page[T]{}, err
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if matchesFilters(item, q.Filters, f) && matchesSearch(item, q.Search, f) {
			filtered = append(filtered, item)
		}
	}

	sortItems(filtered, f.Sort[q.SortBy], q.SortOrder)
	return paginate(filtered, q.Page, q.Limit), nil
}

func matchesFilters[T any](item T, filters map[string]string, f Fields[T]) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		if f.Categorical[name](item) != want {
			return false
		}
	}
	return true
}

func matchesSearch[T any](item T, search string, f Fields[T]) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, text := range f.Text {
		if strings.Contains(strings.ToLower(text(item)), needle) {
			return true
		}
	}
	return false
}

// sortItems orders items by key. Ties keep their input order and missing
// dates sort last in either direction.
func sortItems[T any](items []T, key SortKey[T], order SortOrder) {
	desc := order == Desc
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key.Kind {
		case SortDate:
			da, db := key.Date(a), key.Date(b)
			if (da == nil) != (db == nil) {
				return da != nil // non-nil before nil
			}
			if da == nil || da.Equal(*db) {
				return false
			}
			if desc {
				return da.After(*db)
			}
			return da.Before(*db)
		case SortNumber:
			na, nb := key.Number(a), key.Number(b)
			if na == nb {
				return false
			}
			if desc {
				return na > nb
			}
			return na < nb
		default:
			ta, tb := strings.ToLower(key.Text(a)), strings.ToLower(key.Text(b))
			if ta == tb {
				return false
			}
			if desc {
				return ta > tb
			}
			return ta < tb
		}
	})
}

func paginate[T any](items []T, page, limit int) Page[T] {
	total := len(items)
	totalPages := (total + limit - 1) / limit
	out := Page[T]{
		Data: []T{},
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
	// Checked before multiplying so huge pages cannot overflow.
	if page > totalPages {
		return out
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	out.Data = append(out.Data, items[start:end]...)
	return out
}

// TimePtr adapts a non-optional time field to a date sort key.
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
