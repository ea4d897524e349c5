package pager

import "context"

// Item is anything listable through the engine. Cursor returns the
// opaque token the backend accepts as an "after" parameter to resume
// listing past this item; for the control layer, the item's ID.
type Item interface {
	Cursor() string
}

// ListFunc issues one listing request against the backend: up to limit
// items strictly after the given cursor ("" = from the start). Filters
// (search, status, order) are closed over by the caller so that the
// engine stays agnostic of endpoint shape.
type ListFunc[T Item] func(ctx context.Context, limit int, after string) ([]T, error)

// Page is one displayed page of results.
type Page[T Item] struct {
	// Items holds exactly the rows to display, never more than the
	// requested page size.
	Items []T

	// HasMore reports whether a further page exists, derived from the
	// N+1 overflow rather than trusting any backend flag.
	HasMore bool

	// PageNum and PageSize snapshot the instance state this page was
	// fetched for.
	PageNum  int
	PageSize int
}

// LastCursor returns the identifier of the last displayed item: the
// token a subsequent NextPage must be called with. Empty when the page
// has no items.
func (p Page[T]) LastCursor() string {
	if len(p.Items) == 0 {
		return ""
	}
	return p.Items[len(p.Items)-1].Cursor()
}

// Fetcher adapts a ListFunc to the engine's N+1 convention.
type Fetcher[T Item] struct {
	list ListFunc[T]
}

// NewFetcher creates a fetch adapter over list.
func NewFetcher[T Item](list ListFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{list: list}
}

// FetchPage requests the page described by inst's current state.
//
// It always asks the backend for pageSize+1 items: receiving more than
// pageSize proves a further page exists, and the extra item is trimmed
// before display. Receiving pageSize or fewer means this is the last
// page.
//
// A failed fetch leaves inst untouched: there is no rollback, and a
// retry reuses the now-current cursor rather than re-deriving it.
func (f *Fetcher[T]) FetchPage(ctx context.Context, inst *Instance) (Page[T], error) {
	items, err := f.list(ctx, inst.PageSize()+1, inst.Cursor())
	if err != nil {
		return Page[T]{}, err
	}
	return trimToPage(items, inst), nil
}

// trimToPage applies the N+1 rule to a raw listing response.
func trimToPage[T Item](items []T, inst *Instance) Page[T] {
	size := inst.PageSize()
	hasMore := len(items) > size
	if hasMore {
		items = items[:size]
	}
	return Page[T]{
		Items:    items,
		HasMore:  hasMore,
		PageNum:  inst.Page(),
		PageSize: size,
	}
}
