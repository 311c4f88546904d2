package event

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Create creates a new event owned by the authenticated user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Event, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	created, err := s.events.Create(ctx, &domain.Event{
		UserID:      userID,
		Title:       in.Title,
		Address:     in.Address,
		Description: in.Description,
		Date:        in.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.InfoContext(ctx, "event created", "event_id", created.ID, "user_id", userID)
	return created, nil
}
