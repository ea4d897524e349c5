package pager

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/doublewordai/dwadmin/internal/cache"
)

// Prefetcher is a cache-backed fetch adapter that speculatively warms
// the next page after each successful fetch.
//
// Correctness needs no state machine here: every response, foreground
// or speculative, is stored under a key built strictly from the
// request parameters (namespace, filter signature, limit, after). A
// late-resolving prefetch for a page the user has already navigated
// away from is simply never looked up, and two identical requests in
// flight collapse into one via singleflight.
type Prefetcher[T Item] struct {
	fetcher *Fetcher[T]
	list    ListFunc[T]
	store   *cache.Store
	logger  zerolog.Logger

	// keyParts is the namespace-and-filters signature prepended to
	// every cache key, so instances and filter states never share
	// entries.
	keyParts []string

	group singleflight.Group
	wg    sync.WaitGroup
}

// NewPrefetcher wraps list with the shared response cache. keyParts
// must include the instance namespace and every filter value that
// shapes the response.
func NewPrefetcher[T Item](
	list ListFunc[T],
	store *cache.Store,
	logger zerolog.Logger,
	keyParts ...string,
) *Prefetcher[T] {
	p := &Prefetcher[T]{
		list:     list,
		store:    store,
		logger:   logger,
		keyParts: keyParts,
	}
	p.fetcher = NewFetcher(p.cachedList)
	return p
}

// FetchPage fetches the page described by inst's current state,
// consulting the cache first, then decides whether to warm the page
// after it.
//
// The warm-up is skipped on the first page: issuing a speculative
// request before the user has shown any intent to paginate would waste
// a call on every single list render.
func (p *Prefetcher[T]) FetchPage(ctx context.Context, inst *Instance) (Page[T], error) {
	page, err := p.fetcher.FetchPage(ctx, inst)
	if err != nil {
		return Page[T]{}, err
	}

	// With the cache disabled a speculative response could never be
	// consumed, so the warm-up would only waste a backend call.
	if p.store.IsEnabled() && page.HasMore && len(page.Items) > 0 && inst.Page() > 1 {
		p.warm(inst.PageSize()+1, page.LastCursor())
	}
	return page, nil
}

// Wait blocks until all background prefetches settle. Tests and process
// shutdown use it; interactive callers never need to.
func (p *Prefetcher[T]) Wait() {
	p.wg.Wait()
}

// warm issues the next page's N+1 request in the background so the
// user's eventual NextPage finds it already cached.
func (p *Prefetcher[T]) warm(limit int, after string) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		// Detached from the triggering request's lifetime: the warm-up
		// should outlive the render that scheduled it.
		if _, err := p.cachedList(context.Background(), limit, after); err != nil {
			p.logger.Debug().Err(err).
				Str("after", after).
				Int("limit", limit).
				Msg("prefetch failed")
		}
	}()
}

// cachedList is the ListFunc the inner fetcher runs against: cache
// lookup, then a deduplicated backend call whose result is stored for
// identical future requests.
func (p *Prefetcher[T]) cachedList(ctx context.Context, limit int, after string) ([]T, error) {
	key := p.requestKey(limit, after)

	if entry, err := p.store.Get(key); err == nil {
		var items []T
		if err := json.Unmarshal(entry.Data, &items); err == nil {
			return items, nil
		}
		// Undecodable entry: drop it and fall through to the backend.
		_ = p.store.Delete(key)
	} else if !errors.Is(err, cache.ErrNotFound) &&
		!errors.Is(err, cache.ErrExpired) &&
		!errors.Is(err, cache.ErrCacheDisabled) {
		p.logger.Debug().Err(err).Msg("cache lookup failed")
	}

	result, err, _ := p.group.Do(key, func() (any, error) {
		items, err := p.list(ctx, limit, after)
		if err != nil {
			return nil, err
		}
		if data, marshalErr := json.Marshal(items); marshalErr == nil {
			_ = p.store.Set(key, data)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	items, ok := result.([]T)
	if !ok {
		return nil, errors.New("unexpected cached result type")
	}
	return items, nil
}

// requestKey builds the cache key for one request. Identical parameters
// always yield identical keys; that identity is the whole consistency
// model.
func (p *Prefetcher[T]) requestKey(limit int, after string) string {
	parts := make([]string, 0, len(p.keyParts)+2)
	parts = append(parts, p.keyParts...)
	parts = append(parts, "limit="+strconv.Itoa(limit), "after="+after)
	return cache.Key(parts...)
}
