package event

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// All returns all events ordered by their date, soonest first.
func (s *Service) All(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
