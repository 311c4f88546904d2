package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authtoken "github.com/heartmarshall/communityhub-backend/internal/auth"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// VerifySignIn exchanges a raw sign-in token for a session. The token
// must exist, be unexpired, and be unconsumed; consumption is a guarded
// update, so two concurrent verifications cannot both succeed. The
// first successful sign-in for an address creates the account.
func (s *Service) VerifySignIn(ctx context.Context, rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthorized
	}

	hash := authtoken.HashSignInToken(rawToken)
	tok, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("look up sign-in token: %w", err)
	}

	if tok.IsConsumed() || tok.IsExpired(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	// Consume and upsert commit together so a failed account creation
	// does not burn the token.
	var user *domain.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.tokens.Consume(ctx, tok.ID); err != nil {
			// A concurrent verification won the race.
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUnauthorized
			}
			return fmt.Errorf("consume sign-in token: %w", err)
		}

		user, err = s.users.UpsertByEmail(ctx, tok.Email, nameFromEmail(tok.Email))
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := s.jwt.GenerateSessionToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.InfoContext(ctx, "sign-in verified", "user_id", user.ID)
	return &Session{Token: session, User: user}, nil
}

// nameFromEmail derives a default display name for accounts created by
// the magic-link flow. Users can change it later.
func nameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
