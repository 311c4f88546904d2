// Package auth implements sign-in flows: emailed single-use links,
// password login, registration, and session token validation.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/mailer"
	"github.com/heartmarshall/communityhub-backend/internal/config"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// userRepo is the user persistence interface required by the service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpsertByEmail(ctx context.Context, email, name string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

// tokenRepo is the sign-in token persistence interface.
type tokenRepo interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.SignInToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.SignInToken, error)
	Consume(ctx context.Context, id uuid.UUID) (*domain.SignInToken, error)
}

// tokenManager issues and validates session JWTs and sign-in tokens.
type tokenManager interface {
	GenerateSessionToken(userID uuid.UUID, isAdmin bool) (string, error)
	ValidateSessionToken(token string) (uuid.UUID, bool, error)
	GenerateSignInToken() (raw string, hash string, err error)
}

// mailSender delivers outbound email.
type mailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// txRunner executes fn inside a single database transaction. Repos pick
// the transaction up from the context.
type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service contains the authentication business logic.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRepo
	jwt    tokenManager
	mail   mailSender
	tx     txRunner

	signInURL string
	tokenTTL  time.Duration
	hashCost  int

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a new auth service.
func NewService(logger *slog.Logger, users userRepo, tokens tokenRepo, jwt tokenManager, mail mailSender, tx txRunner, cfg config.AuthConfig) *Service {
	return &Service{
		log:       logger.With("service", "auth"),
		users:     users,
		tokens:    tokens,
		jwt:       jwt,
		mail:      mail,
		tx:        tx,
		signInURL: cfg.SignInURL,
		tokenTTL:  cfg.SignInTokenTTL,
		hashCost:  cfg.PasswordHashCost,
		now:       time.Now,
	}
}

// Session is an issued login session.
type Session struct {
	Token string
	User  *domain.User
}
