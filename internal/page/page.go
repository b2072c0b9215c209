// Package page implements page/limit windows over sorted queries.
//
// Every window orders by an allow-listed column followed by id ASC, so repeated
// calls over unchanged data return the same rows on the same page.
package page

import (
	"fmt"
	"math"
	"slices"
	"strings"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

const (
	// MaxLimit bounds the number of rows a single page may request
	MaxLimit = 100

	// Per-endpoint default limits
	DefaultCommentLimit = 10
	DefaultLimit        = 15

	// MaxPage keeps (page-1)*limit inside int for every allowed limit
	MaxPage = math.MaxInt / MaxLimit
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Params is the client-supplied window request. Zero values select defaults.
type Params struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir string
}

// Spec describes the sortable columns of one listing
type Spec struct {
	DefaultLimit int
	DefaultSort  string
	// Sorts maps client sort keys to SQL column expressions
	Sorts map[string]string
	// IDColumn is the tie-break column, "id" when empty
	IDColumn string
}

// Window is a validated page request ready to be rendered into SQL
type Window struct {
	Page   int
	Limit  int
	Offset int
	Column string
	Dir    Direction
	id     string
}

// Resolve validates params against the allowed sort keys. Page is clamped to
// [1, MaxPage] and limit to [1, MaxLimit]. Unknown sort keys or directions are rejected.
func (s Spec) Resolve(p Params) (Window, error) {
	pageNo := min(max(p.Page, 1), MaxPage)

	limit := p.Limit
	if limit <= 0 {
		limit = s.DefaultLimit
		if limit <= 0 {
			limit = DefaultLimit
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	key := strings.TrimSpace(p.SortBy)
	if key == "" {
		key = s.DefaultSort
	}
	column, ok := s.Sorts[key]
	if !ok {
		return Window{}, apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("unsupported sort field %q (allowed: %s)", p.SortBy, strings.Join(s.keys(), ", ")))
	}

	dir := Desc
	switch strings.ToLower(strings.TrimSpace(p.SortDir)) {
	case "", "desc", "-1":
		dir = Desc
	case "asc", "1":
		dir = Asc
	default:
		return Window{}, apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("unsupported sort direction %q (allowed: asc, desc)", p.SortDir))
	}

	idColumn := s.IDColumn
	if idColumn == "" {
		idColumn = "id"
	}

	return Window{
		Page:   pageNo,
		Limit:  limit,
		Offset: (pageNo - 1) * limit,
		Column: column,
		Dir:    dir,
		id:     idColumn,
	}, nil
}

// OrderBy renders the ORDER BY body with the id tie-break
func (w Window) OrderBy() string {
	return fmt.Sprintf("%s %s, %s ASC", w.Column, strings.ToUpper(string(w.Dir)), w.id)
}

func (s Spec) keys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Page is one window of results plus metadata
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int64 `json:"total_pages"`
}

// New builds a page, computing total pages as ceil(total/limit)
func New[T any](items []T, w Window, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	var pages int64
	if w.Limit > 0 {
		pages = (total + int64(w.Limit) - 1) / int64(w.Limit)
	}
	return &Page[T]{
		Items:      items,
		Page:       w.Page,
		Limit:      w.Limit,
		TotalCount: total,
		TotalPages: pages,
	}
}

// Map converts the items of a page, keeping its metadata
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return &Page[U]{
		Items:      out,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}

// With returns a page of items carrying the metadata of p. items must be
// derived from p.Items one-to-one and in order.
func With[T, U any](p *Page[T], items []U) *Page[U] {
	if items == nil {
		items = []U{}
	}
	return &Page[U]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}
