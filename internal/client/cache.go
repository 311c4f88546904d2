package client

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Status is the lifecycle state of a query cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of a cache entry handed to readers and
// subscribers. Data is shared; consumers must not mutate it.
type Snapshot struct {
	Status    Status
	Data      any
	Err       error
	UpdatedAt time.Time
}

// entry is one cache slot. All fields are guarded by Cache.mu.
type entry struct {
	status     Status
	data       any
	err        error
	updatedAt  time.Time
	stale      bool
	generation uint64
	cancel     context.CancelFunc
	lastAccess time.Time
	subs       map[int]func(Snapshot)
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{Status: e.status, Data: e.data, Err: e.err, UpdatedAt: e.updatedAt}
}

// Options configures a Cache.
type Options struct {
	// MaxAge is how long an unobserved entry survives before garbage
	// collection. Zero uses the default of 5 minutes.
	MaxAge time.Duration
	// GCInterval is how often the janitor sweeps. Zero uses the default
	// of 1 minute; negative disables the janitor entirely.
	GCInterval time.Duration
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Cache is the process-wide query cache. Only the orchestrator methods
// on Cache write to it; consumers read via Get and Subscribe.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	nextSub int

	maxAge     time.Duration
	gcInterval time.Duration
	log        *slog.Logger

	now func() time.Time

	flight   flightGroup
	done     chan struct{}
	closeOne sync.Once
}

// New constructs a Cache and starts its garbage-collection janitor.
// Callers own the Cache and must Close it on shutdown.
func New(opts Options) *Cache {
	if opts.MaxAge == 0 {
		opts.MaxAge = 5 * time.Minute
	}
	if opts.GCInterval == 0 {
		opts.GCInterval = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Cache{
		entries:    make(map[string]*entry),
		maxAge:     opts.MaxAge,
		gcInterval: opts.GCInterval,
		log:        opts.Logger.With("component", "query_cache"),
		now:        time.Now,
		done:       make(chan struct{}),
	}

	if opts.GCInterval > 0 {
		go c.janitor()
	}

	return c
}

// Close stops the janitor and cancels all in-flight fetches.
func (c *Cache) Close() {
	c.closeOne.Do(func() { close(c.done) })

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.cancel != nil {
			e.cancel()
			e.cancel = nil
		}
	}
}

// Get returns the current snapshot for key. The second return is false
// when the key has never been observed.
func (c *Cache) Get(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Snapshot{Status: StatusIdle}, false
	}
	e.lastAccess = c.now()
	return e.snapshot(), true
}

// SetData writes data for key and marks it success. This is the
// orchestrator's direct-write operation; optimistic patches and settled
// fetches both land here. Subscribers are notified.
func (c *Cache) SetData(key Key, data any) {
	c.mu.Lock()
	e := c.ensure(key)
	e.data = data
	e.status = StatusSuccess
	e.err = nil
	e.updatedAt = c.now()
	e.stale = false
	notify := e.notifyLocked()
	c.mu.Unlock()

	notify()
}

// Invalidate marks key stale so the next Query refetches from the
// server. The entry's data reference is left untouched, and invalidating
// an already-stale (or never-observed) key is a no-op, so subscribers
// see at most one notification per transition to stale.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if !ok || e.stale {
		c.mu.Unlock()
		return
	}
	e.stale = true
	notify := e.notifyLocked()
	c.mu.Unlock()

	notify()
}

// Cancel requests cancellation of any in-flight fetch for key and bumps
// the entry's generation so a response that already left the server is
// discarded on arrival.
func (c *Cache) Cancel(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		c.cancelFetchLocked(e)
	}
}

// Subscribe registers fn to run on every change to key's entry and
// returns an unsubscribe func. The entry is created (idle) if absent so
// subscribers exist before the first fetch.
func (c *Cache) Subscribe(key Key, fn func(Snapshot)) func() {
	c.mu.Lock()
	e := c.ensure(key)
	id := c.nextSub
	c.nextSub++
	if e.subs == nil {
		e.subs = make(map[int]func(Snapshot))
	}
	e.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key.String()]; ok {
			delete(e.subs, id)
		}
	}
}

// Len reports the number of live entries. Used by tests and the janitor
// log line.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ensure returns the entry for key, creating an idle one if needed.
// Caller must hold c.mu.
func (c *Cache) ensure(key Key) *entry {
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{status: StatusIdle, lastAccess: c.now()}
		c.entries[id] = e
	}
	e.lastAccess = c.now()
	return e
}

// cancelFetchLocked cancels an in-flight fetch and bumps the generation
// so its late result is discarded. Caller must hold c.mu.
func (c *Cache) cancelFetchLocked(e *entry) {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.generation++
}

// notifyLocked captures the subscriber set and snapshot under the lock
// and returns a func that delivers notifications outside it.
func (e *entry) notifyLocked() func() {
	if len(e.subs) == 0 {
		return func() {}
	}
	snap := e.snapshot()
	fns := make([]func(Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(snap)
		}
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep evicts entries that have not been read past MaxAge and have no
// subscribers or in-flight fetch.
func (c *Cache) sweep() {
	cutoff := c.now().Add(-c.maxAge)

	c.mu.Lock()
	evicted := 0
	for id, e := range c.entries {
		if len(e.subs) == 0 && e.cancel == nil && e.lastAccess.Before(cutoff) {
			delete(c.entries, id)
			evicted++
		}
	}
	remaining := len(c.entries)
	c.mu.Unlock()

	if evicted > 0 {
		c.log.Debug("query cache sweep",
			slog.Int("evicted", evicted),
			slog.Int("remaining", remaining),
		)
	}
}
