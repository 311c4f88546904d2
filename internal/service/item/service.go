// Package item implements marketplace listing use cases. Listings carry
// one to five image URLs and have no comments.
package item

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// ownerItemsLimit caps the "more from this seller" section on the
// detail view.
const ownerItemsLimit = 3

// itemRepo is the persistence interface required by the service.
type itemRepo interface {
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	ListAll(ctx context.Context) ([]domain.ItemWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ItemWithAuthor, error)
	ListOtherByOwner(ctx context.Context, ownerID, excludeID uuid.UUID, limit uint64) ([]domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, it *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service contains the item business logic.
type Service struct {
	log   *slog.Logger
	items itemRepo
}

// NewService creates a new item service.
func NewService(logger *slog.Logger, items itemRepo) *Service {
	return &Service{
		log:   logger.With("service", "item"),
		items: items,
	}
}

func actorFromIdentity(userID uuid.UUID, isAdmin bool) *domain.User {
	return &domain.User{ID: userID, IsAdmin: isAdmin}
}
