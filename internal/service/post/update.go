package post

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// Update replaces a post's title and content. Only the owner or an
// administrator may update.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.Post, error) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.posts.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.posts.Update(ctx, in.ID, in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.log.InfoContext(ctx, "post updated", "post_id", updated.ID, "user_id", id.UserID)
	return updated, nil
}
