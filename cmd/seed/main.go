// Command seed populates the database with demo content for local
// development: a couple of users, blog posts with comments, upcoming
// events, and marketplace listings.
//
// Flags:
//
//	--wipe  delete existing content before seeding
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres"
	commentrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/comment"
	eventrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/event"
	itemrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/item"
	postrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/post"
	userrepo "github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/communityhub-backend/internal/app"
	"github.com/heartmarshall/communityhub-backend/internal/config"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

func main() {
	wipe := flag.Bool("wipe", false, "delete existing content before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if *wipe {
		for _, table := range []string{"post_comments", "event_comments", "posts", "events", "items"} {
			if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
				logger.Error("wipe table", slog.String("table", table), slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		logger.Info("existing content wiped")
	}

	if err := seed(ctx, pool, logger); err != nil {
		logger.Error("seed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding complete")
}

func seed(ctx context.Context, pool postgres.Querier, logger *slog.Logger) error {
	users := userrepo.New(pool)
	posts := postrepo.New(pool)
	events := eventrepo.New(pool)
	items := itemrepo.New(pool)
	postComments := commentrepo.MustNew(pool, domain.CommentKindPost)

	alice, err := users.UpsertByEmail(ctx, "alice@example.com", "Alice")
	if err != nil {
		return err
	}
	bob, err := users.UpsertByEmail(ctx, "bob@example.com", "Bob")
	if err != nil {
		return err
	}
	logger.Info("seeded users", slog.String("alice", alice.ID.String()), slog.String("bob", bob.ID.String()))

	post, err := posts.Create(ctx, alice.ID,
		"Welcome to the community hub",
		"This is the first post. Introduce yourself in the comments and say where you are from.",
	)
	if err != nil {
		return err
	}
	if _, err := postComments.Create(ctx, post.ID, bob.ID, "Hi everyone, Bob here from the north side."); err != nil {
		return err
	}

	if _, err := posts.Create(ctx, bob.ID,
		"Looking for a running group",
		"Anyone up for morning runs along the river? Thinking three times a week, easy pace.",
	); err != nil {
		return err
	}

	if _, err := events.Create(ctx, &domain.Event{
		UserID:      alice.ID,
		Title:       "Neighborhood cleanup day",
		Address:     "Riverside Park, main entrance",
		Description: "Gloves and bags provided. Meet at the main entrance, rain or shine.",
		Date:        time.Now().UTC().AddDate(0, 0, 14).Truncate(time.Hour),
	}); err != nil {
		return err
	}

	if _, err := items.Create(ctx, &domain.Item{
		UserID:      bob.ID,
		Title:       "City bike, barely used",
		Location:    "North side",
		Description: "Three-speed city bike, bought last spring. Includes lock and lights.",
		Images:      []string{"https://images.example.com/demo/bike.jpg"},
	}); err != nil {
		return err
	}

	return nil
}
