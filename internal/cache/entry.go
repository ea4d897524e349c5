package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached response with TTL metadata.
type Entry struct {
	// Key is the cache key (SHA-256 hash of the request parameters).
	Key string `json:"key"`

	// Data is the cached response payload.
	Data json.RawMessage `json:"data"`

	// CreatedAt is when the entry was stored.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry expires.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry expiring ttl from now.
func NewEntry(key string, data json.RawMessage, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry has passed its expiration time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was stored.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}
