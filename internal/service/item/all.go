package item

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// All returns all listings with their sellers, oldest first.
func (s *Service) All(ctx context.Context) ([]domain.ItemWithAuthor, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}
