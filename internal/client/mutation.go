package client

import (
	"context"
	"errors"
	"sync"
)

// MutationRecord tracks one mutation invocation: idle → loading →
// success|error. It is transient and never persisted.
type MutationRecord struct {
	mu      sync.Mutex
	status  Status
	lastErr error
}

// State returns the record's status and last error.
func (r *MutationRecord) State() (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.lastErr
}

func (r *MutationRecord) set(status Status, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.status = status
	r.lastErr = err
	r.mu.Unlock()
}

// Mutation describes one optimistic mutation against a query key.
type Mutation struct {
	// Key is the query cache entry the mutation speculatively patches.
	Key Key
	// Apply transforms the current cached data into its optimistic
	// shape (e.g. a list with one element removed). It runs exactly
	// once, synchronously, against the latest cached data, which may
	// already carry an earlier concurrent mutation's patch. Nil skips
	// the optimistic step. Apply must return new data, never mutate
	// its argument in place.
	Apply func(current any) any
	// Call executes the server procedure. Required.
	Call func(ctx context.Context) (any, error)
	// OnSuccess runs after a successful call, before settlement.
	// Typical use: clear form field-error state, close a modal.
	OnSuccess func(result any)
	// OnError runs after rollback with the structured error so the
	// initiating form can surface field messages or a generic denial.
	OnError func(err error)
	// Record, when set, is updated through the lifecycle.
	Record *MutationRecord
}

// errNilCall reports a Mutation without a Call func.
var errNilCall = errors.New("client: mutation requires a Call func")

// Mutate runs the optimistic mutation protocol:
//
//  1. Cancel any in-flight fetch for Key, snapshot the current cached
//     data, and apply the optimistic patch, all atomically, so the
//     snapshot is always the latest state and a stale fetch response
//     cannot clobber the patch.
//  2. Execute Call.
//  3. On failure, restore the snapshot exactly (full replace) and hand
//     the error to OnError.
//  4. On success, hand the result to OnSuccess.
//  5. Settle: exactly once, regardless of outcome (even if Call
//     panics), mark the record settled and invalidate Key so the next
//     read refetches canonical server state.
//
// No retry is performed; resubmission is the caller's choice.
func (c *Cache) Mutate(ctx context.Context, m Mutation) (any, error) {
	if m.Call == nil {
		return nil, errNilCall
	}

	m.Record.set(StatusLoading, nil)

	// Step 1: cancel, snapshot, patch, all atomic under the cache lock.
	c.mu.Lock()
	e := c.ensure(m.Key)
	c.cancelFetchLocked(e)
	snapshot := e.data
	hadEntry := e.status != StatusIdle
	var notify func()
	if m.Apply != nil && hadEntry {
		e.data = m.Apply(snapshot)
		notify = e.notifyLocked()
	}
	c.mu.Unlock()
	if notify != nil {
		notify()
	}

	// Step 5 is deferred so settlement runs exactly once no matter how
	// the call returns.
	defer c.settleMutation(m.Key)

	// Step 2.
	result, err := m.Call(ctx)

	if err != nil {
		// Step 3: rollback is a full replace with the snapshot, not a
		// merge or re-derivation.
		c.mu.Lock()
		if e, ok := c.entries[m.Key.String()]; ok && m.Apply != nil && hadEntry {
			e.data = snapshot
			notify = e.notifyLocked()
		} else {
			notify = nil
		}
		c.mu.Unlock()
		if notify != nil {
			notify()
		}

		m.Record.set(StatusError, err)
		if m.OnError != nil {
			m.OnError(err)
		}
		return nil, err
	}

	// Step 4.
	m.Record.set(StatusSuccess, nil)
	if m.OnSuccess != nil {
		m.OnSuccess(result)
	}
	return result, nil
}

// settleMutation is the always-runs finalization: the affected key is
// invalidated so the next read reconciles any divergence between the
// optimistic patch and the server's actual computed result.
func (c *Cache) settleMutation(key Key) {
	c.Invalidate(key)
}

// MutateMany invalidates extra keys after a mutation settles, for
// operations whose effect spans several queries (e.g. an update touches
// both the list and the detail view). The primary key follows the full
// optimistic protocol; the extras are invalidated on settlement only.
func (c *Cache) MutateMany(ctx context.Context, m Mutation, alsoInvalidate ...Key) (any, error) {
	defer func() {
		for _, k := range alsoInvalidate {
			c.Invalidate(k)
		}
	}()
	return c.Mutate(ctx, m)
}
