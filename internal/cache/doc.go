// Package cache provides an in-memory response cache with TTL expiration
// for cursor listing requests.
//
// Entries are keyed strictly by request parameters (namespace, filters,
// limit, after-cursor), hashed with SHA-256 for deterministic lookups.
// Because a key identifies the exact request that produced a response,
// prefetched pages merge safely with foreground fetches: a lookup by an
// identical key is correct regardless of which path stored the entry or
// when it resolved.
package cache
