// Package comment implements comment persistence for posts and events.
// The two comment tables share a shape, so one repository serves both,
// parameterized by the comment kind.
package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL for a single
// comment kind.
type Repo struct {
	db        postgres.Querier
	table     string
	parentCol string
}

// New creates a comment repository for the given kind.
func New(db postgres.Querier, kind domain.CommentKind) (*Repo, error) {
	switch kind {
	case domain.CommentKindPost:
		return &Repo{db: db, table: "post_comments", parentCol: "post_id"}, nil
	case domain.CommentKindEvent:
		return &Repo{db: db, table: "event_comments", parentCol: "event_id"}, nil
	default:
		return nil, fmt.Errorf("unknown comment kind %q", kind)
	}
}

// MustNew is New that panics on an unknown kind. For wiring code where
// the kind is a compile-time constant.
func MustNew(db postgres.Querier, kind domain.CommentKind) *Repo {
	r, err := New(db, kind)
	if err != nil {
		panic(err)
	}
	return r
}

type commentRow struct {
	ID        uuid.UUID `db:"id"`
	ParentID  uuid.UUID `db:"parent_id"`
	UserID    uuid.UUID `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type commentAuthorRow struct {
	commentRow
	AuthorName  string  `db:"author_name"`
	AuthorImage *string `db:"author_image"`
}

// Create inserts a new comment under parentID.
func (r *Repo) Create(ctx context.Context, parentID, userID uuid.UUID, content string) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Insert(r.table).
		Columns(r.parentCol, "user_id", "content").
		Values(parentID, userID, content).
		Suffix("RETURNING " + r.returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "comment", uuid.Nil)
	}

	var row commentRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "comment", uuid.Nil)
	}

	c := toDomain(row)
	return &c, nil
}

// GetByID returns a single comment.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select("id", r.parentCol+" AS parent_id", "user_id", "content", "created_at", "updated_at").
		From(r.table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	var row commentRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	c := toDomain(row)
	return &c, nil
}

// ListByParent returns all comments under parentID with their authors,
// oldest first.
func (r *Repo) ListByParent(ctx context.Context, parentID uuid.UUID) ([]domain.CommentWithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select(
			"c.id", "c."+r.parentCol+" AS parent_id", "c.user_id", "c.content",
			"c.created_at", "c.updated_at",
			"u.name AS author_name", "u.image AS author_image",
		).
		From(r.table+" c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c." + r.parentCol: parentID}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "comment", parentID)
	}

	var rows []commentAuthorRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "comment", parentID)
	}

	comments := make([]domain.CommentWithAuthor, len(rows))
	for i, row := range rows {
		comments[i] = domain.CommentWithAuthor{
			Comment: toDomain(row.commentRow),
			Author: domain.Author{
				ID:    row.UserID,
				Name:  row.AuthorName,
				Image: row.AuthorImage,
			},
		}
	}
	return comments, nil
}

// Update replaces the content of the given comment.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Update(r.table).
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + r.returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	var row commentRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	c := toDomain(row)
	return &c, nil
}

// Delete removes a comment.
// Returns domain.ErrNotFound if the comment does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Delete(r.table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "comment", id)
	}
	return nil
}

func (r *Repo) returning() string {
	return fmt.Sprintf("id, %s AS parent_id, user_id, content, created_at, updated_at", r.parentCol)
}

func toDomain(row commentRow) domain.Comment {
	return domain.Comment{
		ID:        row.ID,
		ParentID:  row.ParentID,
		UserID:    row.UserID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
