package post

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Create creates a new post owned by the authenticated user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, userID, in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.InfoContext(ctx, "post created", "post_id", created.ID, "user_id", userID)
	return created, nil
}
