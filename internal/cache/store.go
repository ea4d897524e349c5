package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"
)

// Common cache errors.
var (
	ErrNotFound      = errors.New("cache entry not found")
	ErrExpired       = errors.New("cache entry expired")
	ErrInvalidKey    = errors.New("cache key cannot be empty")
	ErrCacheDisabled = errors.New("cache is disabled")
)

// Store is an in-memory TTL cache for listing responses.
// Thread-safe for concurrent access; the prefetcher writes from
// background goroutines while foreground fetches read.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	enabled bool
}

// NewStore creates a cache with the given TTL. A non-positive TTL or
// enabled=false yields a disabled store whose operations return
// ErrCacheDisabled, which callers treat as a miss.
func NewStore(ttl time.Duration, enabled bool) *Store {
	if ttl <= 0 {
		enabled = false
	}
	return &Store{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		enabled: enabled,
	}
}

// Key builds a deterministic cache key from request parameters.
// All parameters that shape the response must be included; two requests
// with identical parts always map to the same key.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cache entry by key.
// Returns ErrNotFound if absent and ErrExpired (after removing the
// entry) if its TTL has elapsed.
func (s *Store) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if entry.IsExpired() {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return entry, nil
}

// Set stores data under key, overwriting any previous entry.
func (s *Store) Set(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = NewEntry(key, data, s.ttl)
	return nil
}

// Delete removes an entry. Removing a missing entry is not an error.
func (s *Store) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry)
}

// CleanupExpired removes all expired entries.
func (s *Store) CleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if entry.IsExpired() {
			delete(s.entries, key)
		}
	}
}

// Count returns the number of stored entries, expired included.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IsEnabled reports whether the store accepts reads and writes.
func (s *Store) IsEnabled() bool {
	return s.enabled
}

// TTL returns the store's entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
