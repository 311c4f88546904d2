package item

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Create creates a new listing owned by the authenticated user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Item, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.items.Create(ctx, &domain.Item{
		UserID:      userID,
		Title:       in.Title,
		Location:    in.Location,
		Description: in.Description,
		Images:      in.Images,
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.InfoContext(ctx, "item created", "item_id", created.ID, "user_id", userID)
	return created, nil
}
