package post

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// AddComment attaches a comment to a post. Any authenticated user may
// comment; the parent post must exist.
func (s *Service) AddComment(ctx context.Context, in AddCommentInput) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, in.PostID, userID, in.Content)
	if err != nil {
		return nil, fmt.Errorf("add post comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment added", "post_id", in.PostID, "comment_id", created.ID, "user_id", userID)
	return created, nil
}
