package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// Register creates a password-backed account and issues a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	hashStr := string(hash)
	user, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: &hashStr,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.jwt.GenerateSessionToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return &Session{Token: session, User: user}, nil
}

// LoginWithPassword verifies credentials and issues a session. Unknown
// addresses, link-only accounts, and wrong passwords all produce the
// same ErrUnauthorized.
func (s *Service) LoginWithPassword(ctx context.Context, in LoginInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.jwt.GenerateSessionToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &Session{Token: session, User: user}, nil
}
