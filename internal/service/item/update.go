package item

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Update replaces a listing's fields, images included. Only the owner
// or an administrator may update.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.Item, error) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.items.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.items.Update(ctx, in.ID, &domain.Item{
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		Images:      in.Images,
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.log.InfoContext(ctx, "item updated", "item_id", updated.ID, "user_id", id.UserID)
	return updated, nil
}
