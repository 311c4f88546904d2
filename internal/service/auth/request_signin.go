package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/mailer"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// RequestSignIn emails a single-use sign-in link. Whether an account
// already exists is not revealed; the first verified sign-in creates it.
func (s *Service) RequestSignIn(ctx context.Context, email string) error {
	if fe := checkEmail(email); fe != nil {
		return domain.NewValidationErrors([]domain.FieldError{*fe})
	}

	raw, hash, err := s.jwt.GenerateSignInToken()
	if err != nil {
		return fmt.Errorf("generate sign-in token: %w", err)
	}

	if _, err := s.tokens.Create(ctx, email, hash, s.now().Add(s.tokenTTL)); err != nil {
		return fmt.Errorf("store sign-in token: %w", err)
	}

	link := s.signInURL + "?token=" + url.QueryEscape(raw)
	html, err := mailer.RenderSignIn(mailer.SignInData{
		Link:      link,
		ExpiresIn: formatTTL(s.tokenTTL),
	})
	if err != nil {
		return fmt.Errorf("render sign-in mail: %w", err)
	}

	err = s.mail.Send(ctx, mailer.Message{
		To:      email,
		Subject: "Sign in to CommunityHub",
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send sign-in mail: %w", err)
	}

	s.log.InfoContext(ctx, "sign-in link sent", "email", email)
	return nil
}

func formatTTL(ttl time.Duration) string {
	switch h := int(ttl.Hours()); {
	case h == 1:
		return "1 hour"
	case h > 1:
		return fmt.Sprintf("%d hours", h)
	}
	return fmt.Sprintf("%d minutes", int(ttl.Minutes()))
}
