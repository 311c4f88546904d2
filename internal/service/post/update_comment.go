package post

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// UpdateComment replaces a comment's content. Only the comment's author
// or an administrator may edit it.
func (s *Service) UpdateComment(ctx context.Context, in UpdateCommentInput) (*domain.Comment, error) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.comments.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.comments.Update(ctx, in.CommentID, in.Content)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment updated", "comment_id", updated.ID, "user_id", id.UserID)
	return updated, nil
}
