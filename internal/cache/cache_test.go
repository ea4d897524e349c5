package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Deterministic(t *testing.T) {
	key1 := Key("files", "search=x", "limit=11", "after=file-9")
	key2 := Key("files", "search=x", "limit=11", "after=file-9")
	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 64)
}

func TestKey_DistinguishesParts(t *testing.T) {
	base := Key("files", "limit=11", "after=file-9")

	assert.NotEqual(t, base, Key("batches", "limit=11", "after=file-9"))
	assert.NotEqual(t, base, Key("files", "limit=21", "after=file-9"))
	assert.NotEqual(t, base, Key("files", "limit=11", "after=file-19"))
	// Part boundaries matter: "ab"+"c" must differ from "a"+"bc".
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestStore_SetGet(t *testing.T) {
	store := NewStore(time.Minute, true)
	data := json.RawMessage(`[{"id":"file-1"}]`)

	require.NoError(t, store.Set("key1", data))

	entry, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "key1", entry.Key)
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(time.Minute, true)

	_, err := store.Get("absent")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EmptyKeyRejected(t *testing.T) {
	store := NewStore(time.Minute, true)

	_, err := store.Get("")
	require.ErrorIs(t, err, ErrInvalidKey)
	require.ErrorIs(t, store.Set("", nil), ErrInvalidKey)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(time.Millisecond, true)
	require.NoError(t, store.Set("key1", json.RawMessage(`{}`)))

	time.Sleep(5 * time.Millisecond)

	_, err := store.Get("key1")
	require.ErrorIs(t, err, ErrExpired)
	// The expired entry is removed on lookup.
	assert.Zero(t, store.Count())
}

func TestStore_Disabled(t *testing.T) {
	store := NewStore(time.Minute, false)

	require.ErrorIs(t, store.Set("key1", nil), ErrCacheDisabled)
	_, err := store.Get("key1")
	require.ErrorIs(t, err, ErrCacheDisabled)
	assert.False(t, store.IsEnabled())
}

func TestStore_NonPositiveTTLDisables(t *testing.T) {
	store := NewStore(0, true)
	assert.False(t, store.IsEnabled())
}

func TestStore_DeleteIdempotent(t *testing.T) {
	store := NewStore(time.Minute, true)
	require.NoError(t, store.Set("key1", json.RawMessage(`{}`)))

	require.NoError(t, store.Delete("key1"))
	require.NoError(t, store.Delete("key1"))

	_, err := store.Get("key1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CleanupExpired(t *testing.T) {
	store := NewStore(time.Millisecond, true)
	require.NoError(t, store.Set("old", json.RawMessage(`{}`)))
	time.Sleep(5 * time.Millisecond)

	// Bypass Get so the entry is still resident.
	require.Equal(t, 1, store.Count())
	store.CleanupExpired()
	assert.Zero(t, store.Count())
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(time.Minute, true)
	require.NoError(t, store.Set("a", json.RawMessage(`{}`)))
	require.NoError(t, store.Set("b", json.RawMessage(`{}`)))

	store.Clear()
	assert.Zero(t, store.Count())
}

func TestEntry_Age(t *testing.T) {
	entry := NewEntry("k", nil, time.Minute)
	assert.False(t, entry.IsExpired())
	assert.GreaterOrEqual(t, entry.Age(), time.Duration(0))
}
