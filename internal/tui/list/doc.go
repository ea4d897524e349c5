// Package listview implements the interactive paginated browser.
//
// A Model hosts several Views on a single screen, one per pagination
// namespace (files, batches). Each view owns its own
// pagination instance; all instances are bound to one shared query
// string, so the footer always shows a bookmark that restores every
// view's position at once, and mutating one view never disturbs
// another's keys.
//
// All navigation runs synchronously inside Update. Fetches are
// bubbletea commands tagged with the exact pagination state they were
// issued for; completions for abandoned states are dropped on arrival
// rather than cancelled.
package listview
