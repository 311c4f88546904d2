package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/internal/service/post"
)

// ---------- mocks ----------

type postServiceMock struct {
	createFunc        func(ctx context.Context, in post.CreateInput) (*domain.Post, error)
	allFunc           func(ctx context.Context) ([]domain.PostWithAuthor, error)
	byIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.PostDetail, error)
	updateFunc        func(ctx context.Context, in post.UpdateInput) (*domain.Post, error)
	removeFunc        func(ctx context.Context, id uuid.UUID) error
	addCommentFunc    func(ctx context.Context, in post.AddCommentInput) (*domain.Comment, error)
	updateCommentFunc func(ctx context.Context, in post.UpdateCommentInput) (*domain.Comment, error)
	removeCommentFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *postServiceMock) Create(ctx context.Context, in post.CreateInput) (*domain.Post, error) {
	return m.createFunc(ctx, in)
}

func (m *postServiceMock) All(ctx context.Context) ([]domain.PostWithAuthor, error) {
	return m.allFunc(ctx)
}

func (m *postServiceMock) ByID(ctx context.Context, id uuid.UUID) (*domain.PostDetail, error) {
	return m.byIDFunc(ctx, id)
}

func (m *postServiceMock) Update(ctx context.Context, in post.UpdateInput) (*domain.Post, error) {
	return m.updateFunc(ctx, in)
}

func (m *postServiceMock) Remove(ctx context.Context, id uuid.UUID) error {
	return m.removeFunc(ctx, id)
}

func (m *postServiceMock) AddComment(ctx context.Context, in post.AddCommentInput) (*domain.Comment, error) {
	return m.addCommentFunc(ctx, in)
}

func (m *postServiceMock) UpdateComment(ctx context.Context, in post.UpdateCommentInput) (*domain.Comment, error) {
	return m.updateCommentFunc(ctx, in)
}

func (m *postServiceMock) RemoveComment(ctx context.Context, id uuid.UUID) error {
	return m.removeCommentFunc(ctx, id)
}

func newPostHandler(svc postService) *PostHandler {
	return NewPostHandler(svc, slog.New(slog.DiscardHandler))
}

// ---------- tests ----------

func TestPostHandler_Create(t *testing.T) {
	t.Parallel()

	postID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	svc := &postServiceMock{
		createFunc: func(_ context.Context, in post.CreateInput) (*domain.Post, error) {
			require.Equal(t, "Hello world", in.Title)
			require.Equal(t, "First post content", in.Content)
			return &domain.Post{
				ID:        postID,
				Title:     in.Title,
				Content:   in.Content,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"Hello world","content":"First post content"}`))

	newPostHandler(svc).Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, postID.String(), got.ID)
	assert.Equal(t, "Hello world", got.Title)
	assert.Nil(t, got.Author)
}

func TestPostHandler_Create_InvalidBody(t *testing.T) {
	t.Parallel()

	svc := &postServiceMock{
		createFunc: func(context.Context, post.CreateInput) (*domain.Post, error) {
			t.Fatal("service must not be called for malformed JSON")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":`))

	newPostHandler(svc).Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_Create_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := &postServiceMock{
		createFunc: func(context.Context, post.CreateInput) (*domain.Post, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"Hello","content":"Some body text"}`))

	newPostHandler(svc).Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostHandler_All(t *testing.T) {
	t.Parallel()

	author := domain.Author{ID: uuid.New(), Name: "alice"}
	svc := &postServiceMock{
		allFunc: func(context.Context) ([]domain.PostWithAuthor, error) {
			return []domain.PostWithAuthor{
				{Post: domain.Post{ID: uuid.New(), Title: "One"}, Author: author},
				{Post: domain.Post{ID: uuid.New(), Title: "Two"}, Author: author},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)

	newPostHandler(svc).All(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "alice", got[0].Author.Name)
}

func TestPostHandler_ByID(t *testing.T) {
	t.Parallel()

	postID := uuid.New()
	svc := &postServiceMock{
		byIDFunc: func(_ context.Context, id uuid.UUID) (*domain.PostDetail, error) {
			require.Equal(t, postID, id)
			return &domain.PostDetail{
				Post:   domain.Post{ID: postID, Title: "Detailed"},
				Author: domain.Author{ID: uuid.New(), Name: "bob"},
				Comments: []domain.CommentWithAuthor{
					{
						Comment: domain.Comment{ID: uuid.New(), Content: "Nice one"},
						Author:  domain.Author{ID: uuid.New(), Name: "carol"},
					},
				},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+postID.String(), nil)
	req.SetPathValue("id", postID.String())

	newPostHandler(svc).ByID(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got postDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Detailed", got.Title)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Nice one", got.Comments[0].Content)
	assert.Equal(t, "carol", got.Comments[0].Author.Name)
}

func TestPostHandler_ByID_InvalidID(t *testing.T) {
	t.Parallel()

	svc := &postServiceMock{
		byIDFunc: func(context.Context, uuid.UUID) (*domain.PostDetail, error) {
			t.Fatal("service must not be called for a malformed id")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")

	newPostHandler(svc).ByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_ByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := &postServiceMock{
		byIDFunc: func(context.Context, uuid.UUID) (*domain.PostDetail, error) {
			return nil, domain.ErrNotFound
		},
	}

	id := uuid.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+id.String(), nil)
	req.SetPathValue("id", id.String())

	newPostHandler(svc).ByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostHandler_Update_Forbidden(t *testing.T) {
	t.Parallel()

	svc := &postServiceMock{
		updateFunc: func(context.Context, post.UpdateInput) (*domain.Post, error) {
			return nil, domain.ErrForbidden
		},
	}

	id := uuid.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/posts/"+id.String(),
		strings.NewReader(`{"title":"New title","content":"New content here"}`))
	req.SetPathValue("id", id.String())

	newPostHandler(svc).Update(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPostHandler_Remove(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var gotID uuid.UUID
	svc := &postServiceMock{
		removeFunc: func(_ context.Context, id uuid.UUID) error {
			gotID = id
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+id.String(), nil)
	req.SetPathValue("id", id.String())

	newPostHandler(svc).Remove(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, gotID)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPostHandler_AddComment(t *testing.T) {
	t.Parallel()

	postID := uuid.New()
	commentID := uuid.New()
	svc := &postServiceMock{
		addCommentFunc: func(_ context.Context, in post.AddCommentInput) (*domain.Comment, error) {
			require.Equal(t, postID, in.PostID)
			require.Equal(t, "Great write-up", in.Content)
			return &domain.Comment{ID: commentID, Content: in.Content}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.String()+"/comments",
		strings.NewReader(`{"content":"Great write-up"}`))
	req.SetPathValue("id", postID.String())

	newPostHandler(svc).AddComment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, commentID.String(), got["id"])
	assert.Equal(t, "Great write-up", got["content"])
}

func TestPostHandler_RemoveComment_Forbidden(t *testing.T) {
	t.Parallel()

	svc := &postServiceMock{
		removeCommentFunc: func(context.Context, uuid.UUID) error {
			return domain.ErrForbidden
		},
	}

	id := uuid.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/comments/"+id.String(), nil)
	req.SetPathValue("commentId", id.String())

	newPostHandler(svc).RemoveComment(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
