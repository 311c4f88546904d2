package client

import (
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c := New(Options{GCInterval: -1})
	t.Cleanup(c.Close)
	return c
}

func TestCache_GetUnknownKey(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	snap, ok := c.Get(PostAllKey())
	if ok {
		t.Error("expected ok=false for never-observed key")
	}
	if snap.Status != StatusIdle {
		t.Errorf("status: got %s, want idle", snap.Status)
	}
}

func TestCache_SetDataAndGet(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	data := []string{"a", "b"}

	c.SetData(key, data)

	snap, ok := c.Get(key)
	if !ok {
		t.Fatal("expected entry")
	}
	if snap.Status != StatusSuccess {
		t.Errorf("status: got %s, want success", snap.Status)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}
	got, ok := snap.Data.([]string)
	if !ok || len(got) != 2 {
		t.Errorf("data: got %#v", snap.Data)
	}
}

func TestCache_InvalidateKeepsDataReference(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	data := []string{"a", "b", "c"}
	c.SetData(key, data)

	before, _ := c.Get(key)
	c.Invalidate(key)
	after, _ := c.Get(key)

	// The data reference must be untouched: invalidation only marks
	// staleness, it does not replace the value.
	b := before.Data.([]string)
	a := after.Data.([]string)
	if &b[0] != &a[0] {
		t.Error("invalidation replaced the data reference")
	}
	if after.Status != StatusSuccess {
		t.Errorf("status after invalidate: got %s, want success", after.Status)
	}
}

func TestCache_IdempotentInvalidation(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	c.SetData(key, "v1")

	var notifications int
	unsub := c.Subscribe(key, func(Snapshot) { notifications++ })
	defer unsub()

	c.Invalidate(key)
	c.Invalidate(key)
	c.Invalidate(key)

	if notifications != 1 {
		t.Errorf("expected exactly 1 notification for repeated invalidation, got %d", notifications)
	}
}

func TestCache_InvalidateUnknownKeyIsNoop(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	c.Invalidate(PostAllKey())
	if c.Len() != 0 {
		t.Error("invalidating an unknown key must not create an entry")
	}
}

func TestCache_SubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := EventAllKey()

	var got []Snapshot
	unsub := c.Subscribe(key, func(s Snapshot) { got = append(got, s) })

	c.SetData(key, 1)
	c.SetData(key, 2)
	unsub()
	c.SetData(key, 3)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[1].Data != 2 {
		t.Errorf("last observed data: got %v, want 2", got[1].Data)
	}
}

func TestCache_SweepEvictsIdleEntries(t *testing.T) {
	t.Parallel()

	c := New(Options{MaxAge: time.Minute, GCInterval: -1})
	defer c.Close()

	old := PostAllKey()
	fresh := EventAllKey()
	c.SetData(old, "old")
	c.SetData(fresh, "fresh")

	// Age the first entry artificially, then sweep.
	c.mu.Lock()
	c.entries[old.String()].lastAccess = time.Now().Add(-2 * time.Minute)
	c.mu.Unlock()

	c.sweep()

	if _, ok := c.Get(old); ok {
		t.Error("expected aged entry to be evicted")
	}
	if _, ok := c.Get(fresh); !ok {
		t.Error("expected fresh entry to survive")
	}
}

func TestCache_SweepSparesSubscribedEntries(t *testing.T) {
	t.Parallel()

	c := New(Options{MaxAge: time.Minute, GCInterval: -1})
	defer c.Close()

	key := ItemAllKey()
	c.SetData(key, "watched")
	unsub := c.Subscribe(key, func(Snapshot) {})
	defer unsub()

	c.mu.Lock()
	c.entries[key.String()].lastAccess = time.Now().Add(-time.Hour)
	c.mu.Unlock()

	c.sweep()

	if _, ok := c.Get(key); !ok {
		t.Error("subscribed entry must not be evicted")
	}
}
