// Package token implements the SignInToken repository using PostgreSQL.
package token

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// Repo provides sign-in token persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new token repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type tokenRow struct {
	ID         uuid.UUID  `db:"id"`
	Email      string     `db:"email"`
	TokenHash  string     `db:"token_hash"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

const columns = "id, email, token_hash, expires_at, consumed_at, created_at"

// Create inserts a new sign-in token.
func (r *Repo) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.SignInToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Insert("signin_tokens").
		Columns("email", "token_hash", "expires_at").
		Values(email, tokenHash, expiresAt).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "signin_token", uuid.Nil)
	}

	var row tokenRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "signin_token", uuid.Nil)
	}

	t := toDomain(row)
	return &t, nil
}

// GetByHash returns a sign-in token by its hash, consumed or not.
// Expiry and consumption checks belong to the auth service.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.SignInToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Select(columns).
		From("signin_tokens").
		Where(squirrel.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "signin_token", uuid.Nil)
	}

	var row tokenRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "signin_token", uuid.Nil)
	}

	t := toDomain(row)
	return &t, nil
}

// Consume marks a token used, but only if it has not been used yet.
// Returns domain.ErrNotFound when the token does not exist or was
// already consumed, which makes concurrent verification attempts safe.
func (r *Repo) Consume(ctx context.Context, id uuid.UUID) (*domain.SignInToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Update("signin_tokens").
		Set("consumed_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "consumed_at": nil}).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "signin_token", id)
	}

	var row tokenRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "signin_token", id)
	}

	t := toDomain(row)
	return &t, nil
}

// DeleteExpired removes all expired or consumed tokens from the database.
// Returns the count of deleted tokens.
// May delete many records; does not use a transaction.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Delete("signin_tokens").
		Where(squirrel.Or{
			squirrel.Expr("expires_at < now()"),
			squirrel.NotEq{"consumed_at": nil},
		}).
		ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "signin_token", uuid.Nil)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "signin_token", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}

func toDomain(row tokenRow) domain.SignInToken {
	return domain.SignInToken{
		ID:         row.ID,
		Email:      row.Email,
		TokenHash:  row.TokenHash,
		ExpiresAt:  row.ExpiresAt,
		ConsumedAt: row.ConsumedAt,
		CreatedAt:  row.CreatedAt,
	}
}
