// Package pager implements cursor-based pagination for the control
// layer's forward-only listing APIs.
//
// The backend contract exposes only "give me up to N items after this
// one": no total count, no has-more flag, no random page access. This
// package reconstructs a full paging experience from that primitive:
//
//   - Instance holds the per-view state (page, page size, current
//     cursor) plus an instance-local history stack recording the cursor
//     needed to re-request each previously visited page, which is what
//     makes backward navigation possible over a forward-only API.
//   - NextPage, PrevPage, FirstPage and SetPageSize are the only
//     mutations. Going forward k pages and back k pages restores
//     (page, cursor) exactly.
//   - The serializable triple {page, pageSize, cursor} round-trips
//     through query-string parameters, namespaced so several views can
//     share one query string without touching each other's keys. The
//     history stack is deliberately not serialized; see the reload
//     notes on FromValues.
//   - Fetcher requests pageSize+1 items and derives "has more" from the
//     overflow, trimming the extra item before display.
//   - Prefetcher opportunistically warms the next page into a
//     parameter-keyed response cache so that clicking "next" usually
//     finds the page already resolved.
//
// Instances are not safe for concurrent mutation; navigation is
// expected to run on a single event loop (a cobra RunE or a bubbletea
// Update). Fetching and prefetching are safe to run concurrently with
// each other because results are keyed by request parameters, never by
// arrival order.
package pager
