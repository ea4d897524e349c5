package pager

import (
	"errors"
	"net/url"
)

// Navigation errors. These mark rejected inputs, not failed
// navigations: every operation either applies fully or leaves the
// instance untouched.
var (
	ErrEmptyCursor     = errors.New("next page requires a non-empty cursor")
	ErrFirstPage       = errors.New("already on the first page")
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Options configures an Instance at construction time.
type Options struct {
	// DefaultPageSize is the page size used when the query string does
	// not specify one. It is resolved by the caller (config, terminal
	// height) and injected here so the engine itself stays
	// deterministic.
	DefaultPageSize int

	// MaxPageSize caps page sizes read from a query string, so a
	// bookmark cannot smuggle in a size the backend would clamp
	// server-side (silently breaking has-more detection). Zero means
	// no cap.
	MaxPageSize int
}

// fallbackPageSize guards against a zero Options value.
const fallbackPageSize = 10

// Instance is the pagination state for one logical list view.
//
// The namespace disambiguates instances sharing a query string: a
// "files" instance and a "batches" instance on the same screen own
// disjoint parameter keys and never read or write each other's state.
type Instance struct {
	namespace       string
	page            int
	pageSize        int
	defaultPageSize int

	// cursor is the "after" token for the current page's request; ""
	// means first page.
	cursor string

	history historyStack

	// values is the bound query-string store (the address bar). Every
	// navigation operation is reflected into it immediately so the
	// view stays bookmarkable. May be nil when no binding is wanted.
	values url.Values
}

// New creates a first-page instance for the given namespace.
func New(namespace string, opts Options) *Instance {
	size := opts.DefaultPageSize
	if size <= 0 {
		size = fallbackPageSize
	}
	return &Instance{
		namespace:       namespace,
		page:            1,
		pageSize:        size,
		defaultPageSize: size,
	}
}

// Namespace returns the instance's namespace ("" for the default,
// unprefixed instance).
func (i *Instance) Namespace() string { return i.namespace }

// Page returns the current 1-indexed page number.
func (i *Instance) Page() int { return i.page }

// PageSize returns the current page size.
func (i *Instance) PageSize() int { return i.pageSize }

// Cursor returns the "after" token for the current page's request, or
// "" on the first page.
func (i *Instance) Cursor() string { return i.cursor }

// HasPrevPage reports whether backward navigation is possible. Callers
// gate their "previous" control on this.
func (i *Instance) HasPrevPage() bool { return i.page > 1 }

// historyDepth is exposed for tests via the package-internal surface.
func (i *Instance) historyDepth() int { return i.history.depth() }

// Snapshot returns a detached copy of the serializable state (page,
// page size, cursor) with no history stack and no query-string
// binding. Fetch adapters running in background goroutines work from a
// snapshot taken on the event loop, so a navigation arriving mid-fetch
// cannot tear the state being fetched for.
func (i *Instance) Snapshot() *Instance {
	return &Instance{
		namespace:       i.namespace,
		page:            i.page,
		pageSize:        i.pageSize,
		defaultPageSize: i.defaultPageSize,
		cursor:          i.cursor,
	}
}

// NextPage advances to the next page. lastItemCursor is the identifier
// of the last item currently displayed, the token the next request
// must resume after. An empty token is a caller error and is rejected
// without touching state.
func (i *Instance) NextPage(lastItemCursor string) error {
	if lastItemCursor == "" {
		return ErrEmptyCursor
	}
	i.history.set(i.page-1, i.cursor)
	i.page++
	i.cursor = lastItemCursor
	i.syncValues()
	return nil
}

// PrevPage steps back to the previous page, restoring the cursor
// recorded when that page was last requested. At page 1 it is a no-op.
//
// A missing history entry (an instance rebuilt from a URL, where the
// stack is not recoverable) reads as "no cursor": the instance lands on
// page-1 with first-page request semantics.
func (i *Instance) PrevPage() error {
	if i.page <= 1 {
		return ErrFirstPage
	}
	i.cursor = i.history.popTo(i.page - 2)
	i.page--
	i.syncValues()
	return nil
}

// FirstPage jumps back to the start, discarding all history. It is also
// the required reset after a filter change: cursors index positions in
// a filtered ordering, so they do not survive a new filter.
func (i *Instance) FirstPage() {
	i.history.clear()
	i.page = 1
	i.cursor = ""
	i.syncValues()
}

// SetPageSize changes the page size and resets to the first page.
// Cursors index a position in a page-size-dependent ordering; reusing
// old cursors under a new size would yield misaligned pages, so the
// history stack is always discarded.
func (i *Instance) SetPageSize(n int) error {
	if n <= 0 {
		return ErrInvalidPageSize
	}
	i.history.clear()
	i.pageSize = n
	i.page = 1
	i.cursor = ""
	i.syncValues()
	return nil
}
