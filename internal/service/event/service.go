// Package event implements community event use cases: CRUD plus comment
// management. Event dates must lie in the future, capped at the year
// 2100 to catch millisecond-vs-second timestamp mixups.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// maxEventDate is exclusive: the latest acceptable date is just before it.
var maxEventDate = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

// eventRepo is the persistence interface required by the service.
type eventRepo interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// commentRepo is the comment persistence interface required by the service.
type commentRepo interface {
	Create(ctx context.Context, parentID, userID uuid.UUID, content string) (*domain.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]domain.CommentWithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service contains the event business logic.
type Service struct {
	log      *slog.Logger
	events   eventRepo
	comments commentRepo

	// now is swappable in tests for deterministic date validation.
	now func() time.Time
}

// NewService creates a new event service.
func NewService(logger *slog.Logger, events eventRepo, comments commentRepo) *Service {
	return &Service{
		log:      logger.With("service", "event"),
		events:   events,
		comments: comments,
		now:      time.Now,
	}
}

func actorFromIdentity(userID uuid.UUID, isAdmin bool) *domain.User {
	return &domain.User{ID: userID, IsAdmin: isAdmin}
}
