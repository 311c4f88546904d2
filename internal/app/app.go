package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/communityhub-backend/internal/adapter/mailer"
	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres"
	commentrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/comment"
	eventrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/event"
	itemrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/item"
	postrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/post"
	tokenrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/user"
	jwtauth "github.com/heartmarshall/communityhub-backend/internal/auth"
	"github.com/heartmarshall/communityhub-backend/internal/config"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
	authsvc "github.com/heartmarshall/communityhub-backend/internal/service/auth"
	eventsvc "github.com/heartmarshall/communityhub-backend/internal/service/event"
	itemsvc "github.com/heartmarshall/communityhub-backend/internal/service/item"
	mediasvc "github.com/heartmarshall/communityhub-backend/internal/service/media"
	postsvc "github.com/heartmarshall/communityhub-backend/internal/service/post"
	"github.com/heartmarshall/communityhub-backend/internal/transport/middleware"
	"github.com/heartmarshall/communityhub-backend/internal/transport/rest"
)

// requestsPerMinute caps unauthenticated traffic per remote address.
const requestsPerMinute = 120

// Run is the application entry point. It loads configuration, connects
// to the database, wires repositories, services, and the HTTP transport,
// and serves until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	posts := postrepo.New(pool)
	events := eventrepo.New(pool)
	items := itemrepo.New(pool)
	tokens := tokenrepo.New(pool)
	postComments := commentrepo.MustNew(pool, domain.CommentKindPost)
	eventComments := commentrepo.MustNew(pool, domain.CommentKindEvent)

	txm := postgres.NewTxManager(pool)
	jwt := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)
	signer := blobstore.NewSigner(cfg.Blob)
	mail := mailer.New(cfg.Mail)

	authService := authsvc.NewService(logger, users, tokens, jwt, mail, txm, cfg.Auth)
	postService := postsvc.NewService(logger, posts, postComments)
	eventService := eventsvc.NewService(logger, events, eventComments)
	itemService := itemsvc.NewService(logger, items)
	mediaService := mediasvc.NewService(logger, signer, mail, cfg.Mail.ContactTo)

	mux := rest.NewRouter(rest.Handlers{
		Posts:  rest.NewPostHandler(postService, logger),
		Events: rest.NewEventHandler(eventService, users, logger),
		Items:  rest.NewItemHandler(itemService, logger),
		Media:  rest.NewMediaHandler(mediaService, logger),
		Auth:   rest.NewAuthHandler(authService, logger),
		Health: rest.NewHealthHandler(pool, BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(requestsPerMinute),
		middleware.Auth(authService),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
