// Package event implements the Event repository using PostgreSQL.
package event

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

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new event repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type eventRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Title       string    `db:"title"`
	Address     string    `db:"address"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Create inserts a new event owned by userID.
func (r *Repo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Insert("events").
		Columns("user_id", "title", "address", "description", "date").
		Values(e.UserID, e.Title, e.Address, e.Description, e.Date).
		Suffix("RETURNING id, user_id, title, address, description, date, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}

	created := toDomain(row)
	return &created, nil
}

// ListAll returns all events ordered by event date, soonest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select("id", "user_id", "title", "address", "description", "date", "created_at", "updated_at").
		From("events").
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = toDomain(row)
	}
	return events, nil
}

// GetByID returns a single event.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select("id", "user_id", "title", "address", "description", "date", "created_at", "updated_at").
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	e := toDomain(row)
	return &e, nil
}

// Update modifies the mutable fields of the given event.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, e *domain.Event) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Update("events").
		Set("title", e.Title).
		Set("address", e.Address).
		Set("description", e.Description).
		Set("date", e.Date).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, user_id, title, address, description, date, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	updated := toDomain(row)
	return &updated, nil
}

// Delete removes an event. Comments go with it via ON DELETE CASCADE.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "event", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "event", id)
	}
	return nil
}

func toDomain(row eventRow) domain.Event {
	return domain.Event{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Address:     row.Address,
		Description: row.Description,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
