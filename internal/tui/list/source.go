package listview

import (
	"context"
	"sync"

	"github.com/doublewordai/dwadmin/internal/pager"
)

// Row is one rendered table row; ID doubles as the row's cursor token.
type Row struct {
	ID      string
	Columns []string
}

// View is one paginated list hosted by the Model. It hides the item
// type so views over different resources can share a screen.
type View interface {
	// Title names the view in the tab bar.
	Title() string

	// Headers returns the table column headers.
	Headers() []string

	// Instance returns the view's pagination state.
	Instance() *pager.Instance

	// FetchPage fetches the page described by snap, a state snapshot
	// taken on the event loop, returning displayable rows and the
	// has-more flag.
	FetchPage(ctx context.Context, snap *pager.Instance) ([]Row, bool, error)

	// Filter returns the active search filter.
	Filter() string

	// SetFilter replaces the search filter. Cursors index positions in
	// a filtered ordering, so implementations must reset to the first
	// page and stop reusing cached responses keyed to the old filter.
	SetFilter(query string)
}

// Source adapts a typed listing into a View.
type Source[T pager.Item] struct {
	title   string
	headers []string
	inst    *pager.Instance
	render  func(T) Row

	// build constructs a prefetcher keyed to the given filter; called
	// once up front and again on every filter change.
	build func(filter string) *pager.Prefetcher[T]

	// mu guards filter and prefetcher: SetFilter runs on the event loop
	// while FetchPage reads from the tea.Cmd goroutine of an in-flight
	// fetch.
	mu         sync.RWMutex
	prefetcher *pager.Prefetcher[T]
	filter     string
}

// NewSource creates a view over a typed listing.
func NewSource[T pager.Item](
	title string,
	headers []string,
	inst *pager.Instance,
	render func(T) Row,
	build func(filter string) *pager.Prefetcher[T],
) *Source[T] {
	return &Source[T]{
		title:      title,
		headers:    headers,
		inst:       inst,
		render:     render,
		build:      build,
		prefetcher: build(""),
	}
}

// Title implements View.
func (s *Source[T]) Title() string { return s.title }

// Headers implements View.
func (s *Source[T]) Headers() []string { return s.headers }

// Instance implements View.
func (s *Source[T]) Instance() *pager.Instance { return s.inst }

// Filter implements View.
func (s *Source[T]) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter implements View.
func (s *Source[T]) SetFilter(query string) {
	s.mu.Lock()
	if query == s.filter {
		s.mu.Unlock()
		return
	}
	s.filter = query
	s.prefetcher = s.build(query)
	s.mu.Unlock()
	s.inst.FirstPage()
}

// FetchPage implements View.
func (s *Source[T]) FetchPage(ctx context.Context, snap *pager.Instance) ([]Row, bool, error) {
	s.mu.RLock()
	prefetcher := s.prefetcher
	s.mu.RUnlock()

	page, err := prefetcher.FetchPage(ctx, snap)
	if err != nil {
		return nil, false, err
	}
	rows := make([]Row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, s.render(item))
	}
	return rows, page.HasMore, nil
}
