package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Remove deletes a listing. Only the owner or an administrator may
// remove.
func (s *Service) Remove(ctx context.Context, itemID uuid.UUID) error {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if itemID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	existing, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return domain.ErrForbidden
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.InfoContext(ctx, "item removed", "item_id", itemID, "user_id", id.UserID)
	return nil
}
