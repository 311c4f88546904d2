package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// ByID returns an event with its comments, comments oldest first.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*domain.EventDetail, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	comments, err := s.comments.ListByParent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list event comments: %w", err)
	}

	return &domain.EventDetail{
		Event:    *e,
		Comments: comments,
	}, nil
}
