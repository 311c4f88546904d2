package post

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// All returns all posts with their authors, oldest first.
func (s *Service) All(ctx context.Context) ([]domain.PostWithAuthor, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
