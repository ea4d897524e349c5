package pager

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID string `json:"id"`
}

func (t testItem) Cursor() string { return t.ID }

// sliceBackend simulates the control layer's forward-only listing over
// a fixed ordering: up to limit items strictly after the given cursor.
// calls counts backend hits so tests can observe prefetch and cache
// behavior.
func sliceBackend(items []testItem, calls *atomic.Int64) ListFunc[testItem] {
	return func(_ context.Context, limit int, after string) ([]testItem, error) {
		if calls != nil {
			calls.Add(1)
		}
		start := 0
		if after != "" {
			for i, item := range items {
				if item.ID == after {
					start = i + 1
					break
				}
			}
		}
		end := start + limit
		if end > len(items) {
			end = len(items)
		}
		return items[start:end], nil
	}
}

func namedItems(prefix string, n int) []testItem {
	items := make([]testItem, n)
	for i := range items {
		items[i] = testItem{ID: fmt.Sprintf("%s-%d", prefix, i)}
	}
	return items
}

func TestFetchPage_NPlusOneDetection(t *testing.T) {
	// 11 items at page size 10: exactly 10 displayed, more available.
	fetcher := NewFetcher(sliceBackend(namedItems("item", 11), nil))
	inst := New("", Options{DefaultPageSize: 10})

	page, err := fetcher.FetchPage(context.Background(), inst)

	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasMore)
	assert.Equal(t, "item-9", page.LastCursor())
}

func TestFetchPage_ExactPageIsLast(t *testing.T) {
	fetcher := NewFetcher(sliceBackend(namedItems("item", 10), nil))
	inst := New("", Options{DefaultPageSize: 10})

	page, err := fetcher.FetchPage(context.Background(), inst)

	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.False(t, page.HasMore)
}

func TestFetchPage_ShortPage(t *testing.T) {
	fetcher := NewFetcher(sliceBackend(namedItems("item", 3), nil))
	inst := New("", Options{DefaultPageSize: 10})

	page, err := fetcher.FetchPage(context.Background(), inst)

	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasMore)
	assert.Equal(t, "item-2", page.LastCursor())
}

func TestFetchPage_Empty(t *testing.T) {
	fetcher := NewFetcher(sliceBackend(nil, nil))
	inst := New("", Options{DefaultPageSize: 10})

	page, err := fetcher.FetchPage(context.Background(), inst)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.LastCursor())
}

func TestFetchPage_RequestsLimitPlusOneAfterCursor(t *testing.T) {
	var gotLimit int
	var gotAfter string
	list := func(_ context.Context, limit int, after string) ([]testItem, error) {
		gotLimit = limit
		gotAfter = after
		return nil, nil
	}
	inst := New("", Options{DefaultPageSize: 10})
	require.NoError(t, inst.NextPage("item-9"))

	_, err := NewFetcher(list).FetchPage(context.Background(), inst)

	require.NoError(t, err)
	assert.Equal(t, 11, gotLimit)
	assert.Equal(t, "item-9", gotAfter)
}

func TestFetchPage_ErrorLeavesInstanceUntouched(t *testing.T) {
	backendErr := errors.New("control layer unavailable")
	list := func(_ context.Context, _ int, _ string) ([]testItem, error) {
		return nil, backendErr
	}
	inst := New("", Options{DefaultPageSize: 10})
	require.NoError(t, inst.NextPage("item-9"))

	_, err := NewFetcher(list).FetchPage(context.Background(), inst)

	require.ErrorIs(t, err, backendErr)
	// No rollback: the retry reuses the now-current cursor.
	assert.Equal(t, 2, inst.Page())
	assert.Equal(t, "item-9", inst.Cursor())
}
