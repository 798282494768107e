// Package query implements the filter, sort, paginate pipeline shared by the
// entity repositories.
//
// The pipeline is generic over the entity type. Each entity kind supplies a
// match function built from its criteria and a Fields table naming the
// attributes it can be sorted on. Stages run in a fixed order and each one is
// a pass-through when its input is absent.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	dErrors "campus/pkg/domain-errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection accepts any casing of "desc" as Descending. Everything else,
// including the empty string, is Ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Sort names the field to order by and the direction.
type Sort struct {
	Field     string
	Direction Direction
}

// Page selects a zero-indexed window of Size items.
type Page struct {
	Size   int
	Number int
}

// bounds returns the half-open range the page covers over n items, clamped
// to [0, n].
func (p Page) bounds(n int) (int, int) {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)
	number := max(p.Number, 0)

	if number > n/size {
		return n, n
	}
	start := number * size
	end := min(start+size, n)
	return min(start, n), end
}

// Options bundles the optional sort and page stages.
type Options struct {
	Sort *Sort
	Page *Page
}

// Fields maps a sortable field name to an accessor.
type Fields[T any] map[string]func(T) Value

// Filter returns the items for which match is true, in input order. A nil
// match keeps everything. The input slice is never modified.
func Filter[T any](items []T, match func(T) bool) []T {
	if match == nil {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a stably sorted copy of items. A nil sort or an empty field
// name returns an unsorted copy. Unknown fields are a validation error.
func SortBy[T any](items []T, fields Fields[T], s *Sort) ([]T, error) {
	out := slices.Clone(items)
	if s == nil || s.Field == "" {
		return out, nil
	}
	get, ok := fields[s.Field]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown sort field: "+s.Field)
	}

	col := collate.New(language.English)
	desc := s.Direction == Descending
	slices.SortStableFunc(out, func(a, b T) int {
		c := compare(col, get(a), get(b))
		if desc {
			return -c
		}
		return c
	})
	return out, nil
}

// Paginate returns the window selected by page. A nil page returns every
// item; an out-of-range page returns an empty slice.
func Paginate[T any](items []T, page *Page) []T {
	if page == nil {
		return items
	}
	start, end := page.bounds(len(items))
	return items[start:end]
}

// Apply runs filter, sort, and paginate in that order.
func Apply[T any](items []T, match func(T) bool, fields Fields[T], opts Options) ([]T, error) {
	sorted, err := SortBy(Filter(items, match), fields, opts.Sort)
	if err != nil {
		return nil, err
	}
	return Paginate(sorted, opts.Page), nil
}
