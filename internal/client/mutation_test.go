package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

func TestMutate_RequiresCall(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	_, err := c.Mutate(context.Background(), Mutation{Key: PostAllKey()})
	if !errors.Is(err, errNilCall) {
		t.Fatalf("got %v, want errNilCall", err)
	}
}

func TestMutate_OptimisticDeleteRoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	c.SetData(key, []string{"first", "second", "third"})

	var duringCall []string
	callErr := fmt.Errorf("call post.remove: %w", ErrTransport)

	_, err := c.Mutate(context.Background(), Mutation{
		Key: key,
		Apply: func(current any) any {
			list := current.([]string)
			out := make([]string, 0, len(list)-1)
			for _, v := range list {
				if v != "second" {
					out = append(out, v)
				}
			}
			return out
		},
		Call: func(ctx context.Context) (any, error) {
			snap, _ := c.Get(key)
			duringCall = slices.Clone(snap.Data.([]string))
			return nil, callErr
		},
	})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("got %v, want transport error", err)
	}

	if !slices.Equal(duringCall, []string{"first", "third"}) {
		t.Errorf("during call: got %v, want patched list", duringCall)
	}

	// Rollback restores the element in its original position.
	snap, _ := c.Get(key)
	if got := snap.Data.([]string); !slices.Equal(got, []string{"first", "second", "third"}) {
		t.Errorf("after rollback: got %v, want original order", got)
	}
}

func TestMutate_SettleInvalidatesOnSuccessAndFailure(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()

	for _, callErr := range []error{nil, errors.New("boom")} {
		c.SetData(key, "v")
		c.Mutate(context.Background(), Mutation{
			Key:  key,
			Call: func(ctx context.Context) (any, error) { return "ok", callErr },
		})

		c.mu.Lock()
		stale := c.entries[key.String()].stale
		c.mu.Unlock()
		if !stale {
			t.Errorf("callErr=%v: entry not stale after settlement", callErr)
		}
	}
}

func TestMutate_SettlesEvenOnPanic(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	c.SetData(key, "v")

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		c.Mutate(context.Background(), Mutation{
			Key:  key,
			Call: func(ctx context.Context) (any, error) { panic("procedure bug") },
		})
	}()

	c.mu.Lock()
	stale := c.entries[key.String()].stale
	c.mu.Unlock()
	if !stale {
		t.Error("entry not stale after panicking call")
	}
}

func TestMutate_SkipsApplyWhenNothingCached(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostByIDKey(uuid.New())

	applied := false
	_, err := c.Mutate(context.Background(), Mutation{
		Key:   key,
		Apply: func(current any) any { applied = true; return current },
		Call:  func(ctx context.Context) (any, error) { return "created", nil },
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if applied {
		t.Error("Apply must not run against a never-observed entry")
	}
}

func TestMutate_RollbackOnEveryErrorKind(t *testing.T) {
	t.Parallel()

	errs := []error{
		fmt.Errorf("title: %w", domain.ErrValidation),
		domain.ErrUnauthorized,
		domain.ErrForbidden,
		domain.ErrNotFound,
		fmt.Errorf("dial: %w", ErrTransport),
	}

	for _, callErr := range errs {
		c := newTestCache(t)
		key := EventAllKey()
		c.SetData(key, []int{1, 2, 3})

		c.Mutate(context.Background(), Mutation{
			Key:   key,
			Apply: func(current any) any { return []int{1, 3} },
			Call:  func(ctx context.Context) (any, error) { return nil, callErr },
		})

		snap, _ := c.Get(key)
		if got := snap.Data.([]int); !slices.Equal(got, []int{1, 2, 3}) {
			t.Errorf("%v: got %v after rollback, want snapshot restored", callErr, got)
		}
	}
}

func TestMutate_RecordTransitions(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	c.SetData(key, "v")

	rec := &MutationRecord{}
	if s, _ := rec.State(); s != StatusIdle {
		t.Fatalf("fresh record: got %s, want idle", s)
	}

	var during Status
	_, err := c.Mutate(context.Background(), Mutation{
		Key:    key,
		Record: rec,
		Call: func(ctx context.Context) (any, error) {
			during, _ = rec.State()
			return "ok", nil
		},
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if during != StatusLoading {
		t.Errorf("during call: got %s, want loading", during)
	}
	if s, e := rec.State(); s != StatusSuccess || e != nil {
		t.Errorf("after success: got %s/%v", s, e)
	}

	boom := errors.New("boom")
	c.Mutate(context.Background(), Mutation{
		Key:    key,
		Record: rec,
		Call:   func(ctx context.Context) (any, error) { return nil, boom },
	})
	if s, e := rec.State(); s != StatusError || !errors.Is(e, boom) {
		t.Errorf("after failure: got %s/%v", s, e)
	}
}

func TestMutate_CallbacksReceiveResultAndError(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()

	var gotResult any
	c.Mutate(context.Background(), Mutation{
		Key:       key,
		Call:      func(ctx context.Context) (any, error) { return 42, nil },
		OnSuccess: func(result any) { gotResult = result },
		OnError:   func(err error) { t.Errorf("OnError fired on success: %v", err) },
	})
	if gotResult != 42 {
		t.Errorf("OnSuccess result: got %v, want 42", gotResult)
	}

	boom := domain.ErrForbidden
	var gotErr error
	c.Mutate(context.Background(), Mutation{
		Key:       key,
		Call:      func(ctx context.Context) (any, error) { return nil, boom },
		OnSuccess: func(any) { t.Error("OnSuccess fired on failure") },
		OnError:   func(err error) { gotErr = err },
	})
	if !errors.Is(gotErr, boom) {
		t.Errorf("OnError: got %v, want %v", gotErr, boom)
	}
}

// A second mutation started while the first is still calling the server
// must patch on top of the first's optimistic state, and after both
// settle a refetch reconciles the cache with the server.
func TestMutate_ConcurrentMutationsChainPatches(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	c.SetData(key, []string{"a", "b", "c"})

	m1Calling := make(chan struct{})
	m1Release := make(chan struct{})
	m1Done := make(chan struct{})

	go func() {
		defer close(m1Done)
		c.Mutate(context.Background(), Mutation{
			Key: key,
			Apply: func(current any) any {
				return []string{"a", "c"} // remove "b"
			},
			Call: func(ctx context.Context) (any, error) {
				close(m1Calling)
				<-m1Release
				return nil, nil
			},
		})
	}()

	<-m1Calling

	var m2Saw []string
	_, err := c.Mutate(context.Background(), Mutation{
		Key: key,
		Apply: func(current any) any {
			m2Saw = slices.Clone(current.([]string))
			return []string{"a"} // remove "c" on top of m1's patch
		},
		Call: func(ctx context.Context) (any, error) { return nil, nil },
	})
	if err != nil {
		t.Fatalf("m2: %v", err)
	}
	if !slices.Equal(m2Saw, []string{"a", "c"}) {
		t.Errorf("m2 patched against %v, want m1's optimistic state", m2Saw)
	}

	close(m1Release)
	<-m1Done

	// Both settled, so the entry is stale and the next read goes to the
	// server for canonical state.
	got, err := c.Query(context.Background(), key, func(ctx context.Context) (any, error) {
		return []string{"a"}, nil
	})
	if err != nil {
		t.Fatalf("reconciling query: %v", err)
	}
	if !slices.Equal(got.([]string), []string{"a"}) {
		t.Errorf("after reconciliation: got %v", got)
	}
}

func TestMutate_ConcurrentMutationsFirstFails(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	key := PostAllKey()
	c.SetData(key, []string{"a", "b", "c"})

	m1Calling := make(chan struct{})
	m1Release := make(chan struct{})
	m1Done := make(chan struct{})
	m1Err := fmt.Errorf("call post.remove: %w", ErrTransport)

	go func() {
		defer close(m1Done)
		c.Mutate(context.Background(), Mutation{
			Key: key,
			Apply: func(current any) any {
				return []string{"a", "c"} // remove "b"
			},
			Call: func(ctx context.Context) (any, error) {
				close(m1Calling)
				<-m1Release
				return nil, m1Err
			},
		})
	}()

	<-m1Calling

	// m2 lands on top of m1's optimistic patch and succeeds.
	var m2Saw []string
	_, err := c.Mutate(context.Background(), Mutation{
		Key: key,
		Apply: func(current any) any {
			m2Saw = slices.Clone(current.([]string))
			return []string{"a"} // remove "c" as well
		},
		Call: func(ctx context.Context) (any, error) { return nil, nil },
	})
	if err != nil {
		t.Fatalf("m2: %v", err)
	}
	if !slices.Equal(m2Saw, []string{"a", "c"}) {
		t.Errorf("m2 patched against %v, want m1's optimistic state", m2Saw)
	}

	close(m1Release)
	<-m1Done

	// m1's rollback is a full replace of its snapshot, so the cached data
	// is back to the original list until invalidation reconciles.
	snap, _ := c.Get(key)
	if got := snap.Data.([]string); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("after m1 rollback: got %v, want m1's snapshot", got)
	}

	// Both settled, so the next read fetches canonical server state.
	got, err := c.Query(context.Background(), key, func(ctx context.Context) (any, error) {
		return []string{"a"}, nil
	})
	if err != nil {
		t.Fatalf("reconciling query: %v", err)
	}
	if !slices.Equal(got.([]string), []string{"a"}) {
		t.Errorf("after reconciliation: got %v", got)
	}
}

func TestMutateMany_InvalidatesExtraKeys(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	primary := PostAllKey()
	detail := PostByIDKey(uuid.New())
	c.SetData(primary, "list")
	c.SetData(detail, "detail")

	_, err := c.MutateMany(context.Background(), Mutation{
		Key:  primary,
		Call: func(ctx context.Context) (any, error) { return nil, nil },
	}, detail)
	if err != nil {
		t.Fatalf("MutateMany: %v", err)
	}

	c.mu.Lock()
	primaryStale := c.entries[primary.String()].stale
	detailStale := c.entries[detail.String()].stale
	c.mu.Unlock()

	if !primaryStale || !detailStale {
		t.Errorf("stale: primary=%v detail=%v, want both", primaryStale, detailStale)
	}
}
