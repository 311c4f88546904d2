// Package post implements blog post use cases: CRUD plus comment
// management. Authorization follows the owner-or-admin rule.
package post

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// postRepo is the persistence interface required by the service.
type postRepo interface {
	Create(ctx context.Context, userID uuid.UUID, title, content string) (*domain.Post, error)
	ListAll(ctx context.Context) ([]domain.PostWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PostWithAuthor, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) (*domain.Post, error)
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

// Service contains the post business logic.
type Service struct {
	log      *slog.Logger
	posts    postRepo
	comments commentRepo
}

// NewService creates a new post service.
func NewService(logger *slog.Logger, posts postRepo, comments commentRepo) *Service {
	return &Service{
		log:      logger.With("service", "post"),
		posts:    posts,
		comments: comments,
	}
}

// actorFromIdentity builds the authorization subject for CanMutate.
func actorFromIdentity(userID uuid.UUID, isAdmin bool) *domain.User {
	return &domain.User{ID: userID, IsAdmin: isAdmin}
}
