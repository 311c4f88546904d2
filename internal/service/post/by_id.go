package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// ByID returns a post with its author and comments, comments oldest
// first.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*domain.PostDetail, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	comments, err := s.comments.ListByParent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list post comments: %w", err)
	}

	return &domain.PostDetail{
		Post:     p.Post,
		Author:   p.Author,
		Comments: comments,
	}, nil
}
