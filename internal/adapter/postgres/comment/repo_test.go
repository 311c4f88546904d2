package comment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/communityhub-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

func newPostCommentRepo(t *testing.T) (*comment.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return comment.MustNew(pool, domain.CommentKindPost), pool
}

func TestNew_UnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := comment.New(nil, domain.CommentKind("article")); err == nil {
		t.Error("expected error for unknown comment kind")
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	post := testhelper.SeedPost(t, pool, author.ID)

	got, err := repo.Create(ctx, post.ID, author.ID, "Nice post!")
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Error("ID should not be nil")
	}
	if got.ParentID != post.ID {
		t.Errorf("ParentID mismatch: got %s, want %s", got.ParentID, post.ID)
	}
	if got.Content != "Nice post!" {
		t.Errorf("Content mismatch: got %q", got.Content)
	}
}

func TestRepo_Create_UnknownParent(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)

	_, err := repo.Create(ctx, uuid.New(), author.ID, "Orphan comment")
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_ListByParent_OrderAndAuthors(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	visitor := testhelper.SeedUser(t, pool)
	post := testhelper.SeedPost(t, pool, author.ID)

	first, err := repo.Create(ctx, post.ID, visitor.ID, "First comment")
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := repo.Create(ctx, post.ID, author.ID, "Second comment")
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	got, err := repo.ListByParent(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListByParent: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d comments, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Error("comments must be ordered oldest first")
	}
	if got[0].Author.ID != visitor.ID || got[0].Author.Name != visitor.Name {
		t.Errorf("first comment author: got %s/%q", got[0].Author.ID, got[0].Author.Name)
	}
}

func TestRepo_ListByParent_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	post := testhelper.SeedPost(t, pool, author.ID)

	got, err := repo.ListByParent(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListByParent: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d comments, want 0", len(got))
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	post := testhelper.SeedPost(t, pool, author.ID)
	created := testhelper.SeedPostComment(t, pool, post.ID, author.ID)

	got, err := repo.Update(ctx, created.ID, "Edited content")
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if got.Content != "Edited content" {
		t.Errorf("Content: got %q", got.Content)
	}
	if got.ID != created.ID || got.ParentID != post.ID {
		t.Error("Update must not change identity fields")
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	post := testhelper.SeedPost(t, pool, author.ID)
	created := testhelper.SeedPostComment(t, pool, post.ID, author.ID)

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err := repo.GetByID(ctx, created.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_DeleteCascadesWithPost(t *testing.T) {
	t.Parallel()
	repo, pool := newPostCommentRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	post := testhelper.SeedPost(t, pool, author.ID)
	created := testhelper.SeedPostComment(t, pool, post.ID, author.ID)

	if _, err := pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	_, err := repo.GetByID(ctx, created.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
