// Package item implements the marketplace Item repository using PostgreSQL.
package item

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

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type itemRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Title       string    `db:"title"`
	Location    string    `db:"location"`
	Description string    `db:"description"`
	Images      []string  `db:"images"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type itemAuthorRow struct {
	itemRow
	AuthorName  string  `db:"author_name"`
	AuthorImage *string `db:"author_image"`
}

// Create inserts a new item owned by userID. Images are stored as a
// text array; the table constrains it to 1..5 entries.
func (r *Repo) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Insert("items").
		Columns("user_id", "title", "location", "description", "images").
		Values(it.UserID, it.Title, it.Location, it.Description, it.Images).
		Suffix("RETURNING id, user_id, title, location, description, images, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	created := toDomain(row)
	return &created, nil
}

// ListAll returns all items with their authors, oldest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.ItemWithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select(
			"i.id", "i.user_id", "i.title", "i.location", "i.description", "i.images",
			"i.created_at", "i.updated_at",
			"u.name AS author_name", "u.image AS author_image",
		).
		From("items i").
		Join("users u ON u.id = i.user_id").
		OrderBy("i.created_at ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	var rows []itemAuthorRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	items := make([]domain.ItemWithAuthor, len(rows))
	for i, row := range rows {
		items[i] = toDomainWithAuthor(row)
	}
	return items, nil
}

// GetByID returns a single item with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ItemWithAuthor, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select(
			"i.id", "i.user_id", "i.title", "i.location", "i.description", "i.images",
			"i.created_at", "i.updated_at",
			"u.name AS author_name", "u.image AS author_image",
		).
		From("items i").
		Join("users u ON u.id = i.user_id").
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	var row itemAuthorRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	it := toDomainWithAuthor(row)
	return &it, nil
}

// ListOtherByOwner returns up to limit other items by the same owner,
// newest first, excluding the item itself.
func (r *Repo) ListOtherByOwner(ctx context.Context, ownerID, excludeID uuid.UUID, limit uint64) ([]domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select("id", "user_id", "title", "location", "description", "images", "created_at", "updated_at").
		From("items").
		Where(squirrel.Eq{"user_id": ownerID}).
		Where(squirrel.NotEq{"id": excludeID}).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "item", ownerID)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", ownerID)
	}

	items := make([]domain.Item, len(rows))
	for i, row := range rows {
		items[i] = toDomain(row)
	}
	return items, nil
}

// Update modifies the mutable fields of the given item.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, it *domain.Item) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Update("items").
		Set("title", it.Title).
		Set("location", it.Location).
		Set("description", it.Description).
		Set("images", it.Images).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, user_id, title, location, description, images, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	updated := toDomain(row)
	return &updated, nil
}

// Delete removes an item.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Delete("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "item", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "item", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "item", id)
	}
	return nil
}

func toDomain(row itemRow) domain.Item {
	return domain.Item{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Location:    row.Location,
		Description: row.Description,
		Images:      row.Images,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDomainWithAuthor(row itemAuthorRow) domain.ItemWithAuthor {
	return domain.ItemWithAuthor{
		Item: toDomain(row.itemRow),
		Author: domain.Author{
			ID:    row.UserID,
			Name:  row.AuthorName,
			Image: row.AuthorImage,
		},
	}
}
