// Package catalog pages through the word catalog with opaque cursors.
//
// Words are ordered by (value, id). A cursor is the id of a catalog row; it is
// resolved to that row's (value, id) pair, which then acts as a strict
// exclusive bound for the next or previous page.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wordbook/api/internal/model"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

var ErrInvalidCursor = errors.New("invalid cursor")

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Bound is an exclusive (value, id) boundary.
type Bound struct {
	Value string
	ID    string
}

// RangeQuery selects words whose value starts with Prefix (case-insensitive),
// strictly after After and strictly before Before, in Order, at most Limit rows.
type RangeQuery struct {
	Prefix string
	After  *Bound
	Before *Bound
	Order  Direction
	Limit  int
}

// Store is the storage the paginator needs. FindByID returns
// model.ErrNotFound for unknown ids.
type Store interface {
	FindByID(ctx context.Context, id string) (*model.Word, error)
	Range(ctx context.Context, q RangeQuery) ([]model.Word, error)
	Count(ctx context.Context, prefix string) (int64, error)
}

type Query struct {
	Search   string
	Limit    int
	Next     string
	Previous string
}

type Page struct {
	Results   []model.Word `json:"results"`
	TotalDocs int64        `json:"totalDocs"`
	Next      *string      `json:"next"`
	Previous  *string      `json:"previous"`
	HasNext   bool         `json:"hasNext"`
	HasPrev   bool         `json:"hasPrev"`
}

type Paginator struct {
	store Store
}

func NewPaginator(store Store) *Paginator {
	return &Paginator{store: store}
}

// ClampLimit forces limit into [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ListWords returns one page of the catalog. When both cursors are set, Next
// wins. hasPrev only reflects whether a cursor was supplied, and a backward
// page always reports hasNext.
func (p *Paginator) ListWords(ctx context.Context, q Query) (*Page, error) {
	limit := ClampLimit(q.Limit)
	prefix := strings.ToLower(q.Search)

	var (
		rows    []model.Word
		hasNext bool
		err     error
	)
	switch {
	case q.Next != "":
		rows, hasNext, err = p.forward(ctx, prefix, q.Next, limit)
	case q.Previous != "":
		rows, err = p.backward(ctx, prefix, q.Previous, limit)
		hasNext = true
	default:
		rows, hasNext, err = p.forward(ctx, prefix, "", limit)
	}
	if err != nil {
		return nil, err
	}

	total, err := p.store.Count(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}

	page := &Page{
		Results:   rows,
		TotalDocs: total,
		HasNext:   hasNext,
		HasPrev:   q.Next != "" || q.Previous != "",
	}
	if len(rows) > 0 {
		first := rows[0].ID
		page.Previous = &first
		if hasNext {
			last := rows[len(rows)-1].ID
			page.Next = &last
		}
	}
	return page, nil
}

func (p *Paginator) forward(ctx context.Context, prefix, cursor string, limit int) ([]model.Word, bool, error) {
	q := RangeQuery{Prefix: prefix, Order: Ascending, Limit: limit + 1}
	if cursor != "" {
		b, err := p.resolve(ctx, cursor)
		if err != nil {
			return nil, false, err
		}
		q.After = b
	}

	rows, err := p.store.Range(ctx, q)
	if err != nil {
		return nil, false, fmt.Errorf("query words: %w", err)
	}
	if len(rows) > limit {
		return rows[:limit], true, nil
	}
	return nonNil(rows), false, nil
}

// backward reads the limit rows immediately before the cursor. The extra row
// fetched is the one farthest from the cursor, so it is dropped before the
// rows are flipped back to ascending order. The earlier version of this
// service reversed first and then kept the first limit rows, which drops the
// row next to the cursor instead, so that word was skipped paging backward.
func (p *Paginator) backward(ctx context.Context, prefix, cursor string, limit int) ([]model.Word, error) {
	b, err := p.resolve(ctx, cursor)
	if err != nil {
		return nil, err
	}

	rows, err := p.store.Range(ctx, RangeQuery{Prefix: prefix, Before: b, Order: Descending, Limit: limit + 1})
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return nonNil(rows), nil
}

func (p *Paginator) resolve(ctx context.Context, id string) (*Bound, error) {
	w, err := p.store.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCursor, id)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve cursor: %w", err)
	}
	return &Bound{Value: w.Value, ID: w.ID}, nil
}

func nonNil(rows []model.Word) []model.Word {
	if rows == nil {
		return []model.Word{}
	}
	return rows
}
