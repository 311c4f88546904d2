package event

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Update replaces an event's fields. Only the owner or an administrator
// may update.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.Event, error) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	existing, err := s.events.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.events.Update(ctx, in.ID, &domain.Event{
		Title:       in.Title,
		Address:     in.Address,
		Description: in.Description,
		Date:        in.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.InfoContext(ctx, "event updated", "event_id", updated.ID, "user_id", id.UserID)
	return updated, nil
}
