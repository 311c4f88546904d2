package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// ByID returns a listing with its seller and up to three other listings
// by the same seller, newest first.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*domain.ItemDetail, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	others, err := s.items.ListOtherByOwner(ctx, it.UserID, it.ID, ownerItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("list owner items: %w", err)
	}

	return &domain.ItemDetail{
		Item:       it.Item,
		Author:     it.Author,
		OwnerItems: others,
	}, nil
}
