package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Remove deletes an event and, via the schema, its comments. Only the
// owner or an administrator may remove.
func (s *Service) Remove(ctx context.Context, eventID uuid.UUID) error {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if eventID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	existing, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return domain.ErrForbidden
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.InfoContext(ctx, "event removed", "event_id", eventID, "user_id", id.UserID)
	return nil
}
