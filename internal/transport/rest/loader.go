package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

const (
	loaderMaxBatch = 100
	loaderWait     = 2 * time.Millisecond
)

// userLister batch-loads users for author joins.
type userLister interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// newAuthorLoader creates a per-request loader that collapses author
// lookups into a single SQL call. Loaders cache within one request, so
// a fresh instance is created per handler invocation.
func newAuthorLoader(users userLister) *dataloader.Loader[uuid.UUID, domain.Author] {
	return dataloader.NewBatchedLoader(
		newAuthorBatchFn(users),
		dataloader.WithWait[uuid.UUID, domain.Author](loaderWait),
		dataloader.WithBatchCapacity[uuid.UUID, domain.Author](loaderMaxBatch),
	)
}

func newAuthorBatchFn(users userLister) dataloader.BatchFunc[uuid.UUID, domain.Author] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.Author] {
		results := make([]*dataloader.Result[domain.Author], len(keys))

		list, err := users.ListByIDs(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[domain.Author]{Error: err}
			}
			return results
		}

		byID := make(map[uuid.UUID]domain.Author, len(list))
		for _, u := range list {
			byID[u.ID] = u.DisplayAuthor()
		}

		for i, key := range keys {
			if author, ok := byID[key]; ok {
				results[i] = &dataloader.Result[domain.Author]{Data: author}
			} else {
				results[i] = &dataloader.Result[domain.Author]{
					Error: fmt.Errorf("author %s: %w", key, domain.ErrNotFound),
				}
			}
		}
		return results
	}
}
