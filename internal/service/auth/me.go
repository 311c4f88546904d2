package auth

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// ValidateToken parses a bearer token into a caller identity. Used by
// the auth middleware.
func (s *Service) ValidateToken(token string) (ctxutil.Identity, error) {
	userID, isAdmin, err := s.jwt.ValidateSessionToken(token)
	if err != nil {
		return ctxutil.Identity{}, domain.ErrUnauthorized
	}
	return ctxutil.Identity{UserID: userID, IsAdmin: isAdmin}, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
