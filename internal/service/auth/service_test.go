package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/mailer"
	authtoken "github.com/heartmarshall/communityhub-backend/internal/auth"
	"github.com/heartmarshall/communityhub-backend/internal/config"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// ---------- mocks ----------

type mockUserRepo struct {
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	upsertByEmailFunc func(ctx context.Context, email, name string) (*domain.User, error)
	createFunc        func(ctx context.Context, u *domain.User) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) UpsertByEmail(ctx context.Context, email, name string) (*domain.User, error) {
	return m.upsertByEmailFunc(ctx, email, name)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return m.createFunc(ctx, u)
}

type mockTokenRepo struct {
	createFunc    func(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.SignInToken, error)
	getByHashFunc func(ctx context.Context, tokenHash string) (*domain.SignInToken, error)
	consumeFunc   func(ctx context.Context, id uuid.UUID) (*domain.SignInToken, error)
}

func (m *mockTokenRepo) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.SignInToken, error) {
	return m.createFunc(ctx, email, tokenHash, expiresAt)
}

func (m *mockTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.SignInToken, error) {
	return m.getByHashFunc(ctx, tokenHash)
}

func (m *mockTokenRepo) Consume(ctx context.Context, id uuid.UUID) (*domain.SignInToken, error) {
	return m.consumeFunc(ctx, id)
}

type mockMailer struct {
	sendFunc func(ctx context.Context, msg mailer.Message) error
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.sendFunc(ctx, msg)
}

// passthroughTx runs the callback without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------- helpers ----------

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret-0123456789abcdef-0123456789",
		JWTIssuer:        "communityhub-test",
		SessionTTL:       time.Hour,
		SignInTokenTTL:   24 * time.Hour,
		SignInURL:        "http://localhost:3000/sign-in/verify",
		PasswordHashCost: bcrypt.MinCost,
	}
}

func newService(users *mockUserRepo, tokens *mockTokenRepo, mail *mockMailer) *Service {
	if users == nil {
		users = &mockUserRepo{}
	}
	if tokens == nil {
		tokens = &mockTokenRepo{}
	}
	if mail == nil {
		mail = &mockMailer{sendFunc: func(context.Context, mailer.Message) error { return nil }}
	}
	cfg := testConfig()
	jwt := authtoken.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)
	return NewService(slog.New(slog.DiscardHandler), users, tokens, jwt, mail, passthroughTx{}, cfg)
}

// ---------- RequestSignIn ----------

func TestRequestSignIn_HappyPath(t *testing.T) {
	t.Parallel()

	var storedHash string
	tokens := &mockTokenRepo{
		createFunc: func(_ context.Context, email, tokenHash string, expiresAt time.Time) (*domain.SignInToken, error) {
			storedHash = tokenHash
			return &domain.SignInToken{ID: uuid.New(), Email: email, TokenHash: tokenHash, ExpiresAt: expiresAt}, nil
		},
	}
	var sent mailer.Message
	mail := &mockMailer{
		sendFunc: func(_ context.Context, msg mailer.Message) error {
			sent = msg
			return nil
		},
	}
	svc := newService(nil, tokens, mail)

	if err := svc.RequestSignIn(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("RequestSignIn: unexpected error: %v", err)
	}

	if sent.To != "alice@example.com" {
		t.Errorf("To: got %q", sent.To)
	}
	if !strings.Contains(sent.HTML, "token=") {
		t.Error("mail body must carry the token link")
	}

	// The raw token is in the mail, its hash in storage; they must
	// correspond.
	idx := strings.Index(sent.HTML, "token=")
	raw := sent.HTML[idx+len("token="):]
	if end := strings.IndexAny(raw, `"<&`); end > 0 {
		raw = raw[:end]
	}
	if authtoken.HashSignInToken(raw) != storedHash {
		t.Error("stored hash does not match the emailed token")
	}
}

func TestRequestSignIn_InvalidEmail(t *testing.T) {
	t.Parallel()

	stored := false
	tokens := &mockTokenRepo{
		createFunc: func(_ context.Context, email, hash string, exp time.Time) (*domain.SignInToken, error) {
			stored = true
			return &domain.SignInToken{}, nil
		},
	}
	svc := newService(nil, tokens, nil)

	for _, email := range []string{"", "ab", "not-an-address", strings.Repeat("a", 250) + "@example.com"} {
		if err := svc.RequestSignIn(context.Background(), email); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("email %q: expected validation error, got: %v", email, err)
		}
	}
	if stored {
		t.Error("no token may be stored for invalid addresses")
	}
}

// ---------- VerifySignIn ----------

func validToken(email string, raw string) *domain.SignInToken {
	return &domain.SignInToken{
		ID:        uuid.New(),
		Email:     email,
		TokenHash: authtoken.HashSignInToken(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestVerifySignIn_HappyPath(t *testing.T) {
	t.Parallel()

	raw := "raw-signin-token"
	tok := validToken("alice@example.com", raw)
	consumed := false

	tokens := &mockTokenRepo{
		getByHashFunc: func(_ context.Context, hash string) (*domain.SignInToken, error) {
			if hash != tok.TokenHash {
				return nil, domain.ErrNotFound
			}
			return tok, nil
		},
		consumeFunc: func(_ context.Context, id uuid.UUID) (*domain.SignInToken, error) {
			consumed = true
			now := time.Now()
			out := *tok
			out.ConsumedAt = &now
			return &out, nil
		},
	}
	userID := uuid.New()
	users := &mockUserRepo{
		upsertByEmailFunc: func(_ context.Context, email, name string) (*domain.User, error) {
			if email != "alice@example.com" {
				t.Errorf("upsert email: got %q", email)
			}
			if name != "alice" {
				t.Errorf("derived name: got %q, want %q", name, "alice")
			}
			return &domain.User{ID: userID, Email: email, Name: name}, nil
		},
	}
	svc := newService(users, tokens, nil)

	session, err := svc.VerifySignIn(context.Background(), raw)
	if err != nil {
		t.Fatalf("VerifySignIn: unexpected error: %v", err)
	}
	if !consumed {
		t.Error("token must be consumed")
	}
	if session.User.ID != userID {
		t.Errorf("User.ID: got %s", session.User.ID)
	}

	// The issued session validates back to the same identity.
	identity, err := svc.ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if identity.UserID != userID {
		t.Errorf("identity: got %s, want %s", identity.UserID, userID)
	}
}

func TestVerifySignIn_Rejections(t *testing.T) {
	t.Parallel()

	raw := "raw-signin-token"
	now := time.Now()

	tests := []struct {
		name  string
		token func() *domain.SignInToken
		err   error
	}{
		{name: "unknown token", err: domain.ErrNotFound},
		{name: "expired token", token: func() *domain.SignInToken {
			tok := validToken("a@example.com", raw)
			tok.ExpiresAt = now.Add(-time.Minute)
			return tok
		}},
		{name: "consumed token", token: func() *domain.SignInToken {
			tok := validToken("a@example.com", raw)
			tok.ConsumedAt = &now
			return tok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := &mockTokenRepo{
				getByHashFunc: func(context.Context, string) (*domain.SignInToken, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return tt.token(), nil
				},
				consumeFunc: func(context.Context, uuid.UUID) (*domain.SignInToken, error) {
					t.Error("rejected tokens must not be consumed")
					return nil, nil
				},
			}
			svc := newService(nil, tokens, nil)

			_, err := svc.VerifySignIn(context.Background(), raw)
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got: %v", err)
			}
		})
	}
}

func TestVerifySignIn_ConsumeRaceLoses(t *testing.T) {
	t.Parallel()

	raw := "raw-signin-token"
	tok := validToken("a@example.com", raw)
	tokens := &mockTokenRepo{
		getByHashFunc: func(context.Context, string) (*domain.SignInToken, error) {
			return tok, nil
		},
		consumeFunc: func(context.Context, uuid.UUID) (*domain.SignInToken, error) {
			// Another request consumed the token between load and update.
			return nil, domain.ErrNotFound
		},
	}
	svc := newService(nil, tokens, nil)

	_, err := svc.VerifySignIn(context.Background(), raw)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}

// ---------- Register / LoginWithPassword ----------

func TestRegister_HappyPath(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		createFunc: func(_ context.Context, u *domain.User) (*domain.User, error) {
			if u.PasswordHash == nil {
				t.Fatal("password hash must be set")
			}
			if *u.PasswordHash == "secret-password" {
				t.Error("password must not be stored in the clear")
			}
			out := *u
			out.ID = uuid.New()
			return &out, nil
		},
	}
	svc := newService(users, nil, nil)

	session, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Error("expected a session token")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		createFunc: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	svc := newService(users, nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "secret-password",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRegister_PasswordBounds(t *testing.T) {
	t.Parallel()
	svc := newService(nil, nil, nil)

	for _, password := range []string{"", "short", strings.Repeat("p", 73)} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Email:    "bob@example.com",
			Name:     "Bob",
			Password: password,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("password %q: expected validation error, got: %v", password, err)
		}
	}
}

func TestLoginWithPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	hashStr := string(hash)
	userID := uuid.New()

	tests := []struct {
		name     string
		email    string
		password string
		user     *domain.User
		userErr  error
		wantErr  error
	}{
		{
			name: "correct credentials", email: "bob@example.com", password: "correct-password",
			user: &domain.User{ID: userID, Email: "bob@example.com", PasswordHash: &hashStr},
		},
		{
			name: "wrong password", email: "bob@example.com", password: "wrong-password",
			user:    &domain.User{ID: userID, Email: "bob@example.com", PasswordHash: &hashStr},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name: "unknown address", email: "nobody@example.com", password: "correct-password",
			userErr: domain.ErrNotFound, wantErr: domain.ErrUnauthorized,
		},
		{
			name: "link-only account", email: "link@example.com", password: "correct-password",
			user:    &domain.User{ID: userID, Email: "link@example.com"},
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users := &mockUserRepo{
				getByEmailFunc: func(context.Context, string) (*domain.User, error) {
					if tt.userErr != nil {
						return nil, tt.userErr
					}
					return tt.user, nil
				},
			}
			svc := newService(users, nil, nil)

			session, err := svc.LoginWithPassword(context.Background(), LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.User.ID != userID {
				t.Errorf("User.ID: got %s", session.User.ID)
			}
		})
	}
}

// ---------- ValidateToken / Me ----------

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()
	svc := newService(nil, nil, nil)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got: %v", token, err)
		}
	}
}

func TestMe(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &mockUserRepo{
		getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if id != userID {
				return nil, domain.ErrNotFound
			}
			return &domain.User{ID: id, Email: "me@example.com"}, nil
		},
	}
	svc := newService(users, nil, nil)

	ctx := ctxutil.WithIdentity(context.Background(), ctxutil.Identity{UserID: userID})
	got, err := svc.Me(ctx)
	if err != nil {
		t.Fatalf("Me: unexpected error: %v", err)
	}
	if got.Email != "me@example.com" {
		t.Errorf("Email: got %q", got.Email)
	}

	if _, err := svc.Me(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous Me: expected ErrUnauthorized, got: %v", err)
	}
}
