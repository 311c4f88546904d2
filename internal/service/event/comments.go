package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// AddComment attaches a comment to an event. Any authenticated user may
// comment; the parent event must exist.
func (s *Service) AddComment(ctx context.Context, in AddCommentInput) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, in.EventID, userID, in.Content)
	if err != nil {
		return nil, fmt.Errorf("add event comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment added", "event_id", in.EventID, "comment_id", created.ID, "user_id", userID)
	return created, nil
}

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

// RemoveComment deletes a comment. Only the comment's author or an
// administrator may remove it.
func (s *Service) RemoveComment(ctx context.Context, commentID uuid.UUID) error {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if commentID == uuid.Nil {
		return domain.NewValidationError("commentId", "required")
	}

	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}

	if !domain.CanMutate(existing.UserID, actorFromIdentity(id.UserID, id.IsAdmin)) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment removed", "comment_id", commentID, "user_id", id.UserID)
	return nil
}
