package client

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// fetchResult carries a settled fetch with the generation it belongs to.
type fetchResult struct {
	data       any
	err        error
	generation uint64
}

// group deduplicates concurrent fetches per key across goroutines.
// It lives outside Cache state because singleflight manages its own map.
type flightGroup struct {
	g singleflight.Group
}

// Query returns the cached data for key, fetching through fetch when the
// entry is absent, stale, or errored. Concurrent Query calls for the
// same key share one fetch. A fetch whose entry was superseded by a
// mutation (generation bumped) settles without writing the cache: its
// value is returned to the caller, but the optimistic state is left for
// the invalidation-driven refetch to reconcile.
func (c *Cache) Query(ctx context.Context, key Key, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	e := c.ensure(key)

	if e.status == StatusSuccess && !e.stale {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	// Refetch path: loading, keeping the last known data for readers.
	e.status = StatusLoading
	gen := e.generation

	// The fetch runs on a context detached from the caller so a shared
	// (deduplicated) fetch is not torn down when one of several waiters
	// goes away; Cancel and Mutate cancel it explicitly. Only the first
	// caller installs the cancel func; followers join the same flight.
	fetchCtx := context.WithoutCancel(ctx)
	if e.cancel == nil {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithCancel(fetchCtx)
		e.cancel = cancel
	}
	notify := e.notifyLocked()
	c.mu.Unlock()
	notify()

	v, _, _ := c.flight.g.Do(key.String(), func() (any, error) {
		data, err := fetch(fetchCtx)
		return fetchResult{data: data, err: err, generation: gen}, nil
	})
	res := v.(fetchResult)

	c.settleFetch(key, res)

	if res.err != nil {
		return nil, res.err
	}
	return res.data, nil
}

// settleFetch writes a fetch outcome into the cache unless the entry's
// generation moved past the fetch (a mutation superseded it).
func (c *Cache) settleFetch(key Key, res fetchResult) {
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if !ok {
		c.mu.Unlock()
		return
	}

	if e.generation != res.generation {
		// Superseded: a mutation patched or cancelled this key while the
		// fetch was in flight. Discard rather than clobber.
		c.mu.Unlock()
		return
	}

	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	if res.err != nil {
		e.status = StatusError
		e.err = res.err
	} else {
		e.status = StatusSuccess
		e.err = nil
		e.data = res.data
		e.stale = false
	}
	e.updatedAt = c.now()
	notify := e.notifyLocked()
	c.mu.Unlock()

	notify()
}
