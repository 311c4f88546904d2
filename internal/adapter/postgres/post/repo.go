// Package post implements the Post repository using PostgreSQL.
package post

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new post repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type postRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type postAuthorRow struct {
	postRow
	AuthorName  string  `db:"author_name"`
	AuthorImage *string `db:"author_image"`
}

// Create inserts a new post owned by userID.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, title, content string) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Insert("posts").
		Columns("user_id", "title", "content").
		Values(userID, title, content).
		Suffix("RETURNING id, user_id, title, content, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "post", uuid.Nil)
	}

	var row postRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "post", uuid.Nil)
	}

	p := toDomain(row)
	return &p, nil
}

// ListAll returns all posts with their authors, oldest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.PostWithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select(
			"p.id", "p.user_id", "p.title", "p.content", "p.created_at", "p.updated_at",
			"u.name AS author_name", "u.image AS author_image",
		).
		From("posts p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.created_at ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "post", uuid.Nil)
	}

	var rows []postAuthorRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "post", uuid.Nil)
	}

	posts := make([]domain.PostWithAuthor, len(rows))
	for i, row := range rows {
		posts[i] = toDomainWithAuthor(row)
	}
	return posts, nil
}

// GetByID returns a single post with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PostWithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select(
			"p.id", "p.user_id", "p.title", "p.content", "p.created_at", "p.updated_at",
			"u.name AS author_name", "u.image AS author_image",
		).
		From("posts p").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}

	var row postAuthorRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "post", id)
	}

	p := toDomainWithAuthor(row)
	return &p, nil
}

// Update modifies title and content of the given post.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, title, content string) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Update("posts").
		Set("title", title).
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, user_id, title, content, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}

	var row postRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "post", id)
	}

	p := toDomain(row)
	return &p, nil
}

// Delete removes a post. Comments go with it via ON DELETE CASCADE.
// Returns domain.ErrNotFound if the post does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Delete("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "post", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "post", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "post", id)
	}
	return nil
}

func toDomain(row postRow) domain.Post {
	return domain.Post{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toDomainWithAuthor(row postAuthorRow) domain.PostWithAuthor {
	return domain.PostWithAuthor{
		Post: toDomain(row.postRow),
		Author: domain.Author{
			ID:    row.UserID,
			Name:  row.AuthorName,
			Image: row.AuthorImage,
		},
	}
}
