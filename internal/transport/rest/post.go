package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/internal/service/post"
)

// postService defines the minimal interface needed by PostHandler.
type postService interface {
	Create(ctx context.Context, in post.CreateInput) (*domain.Post, error)
	All(ctx context.Context) ([]domain.PostWithAuthor, error)
	ByID(ctx context.Context, id uuid.UUID) (*domain.PostDetail, error)
	Update(ctx context.Context, in post.UpdateInput) (*domain.Post, error)
	Remove(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, in post.AddCommentInput) (*domain.Comment, error)
	UpdateComment(ctx context.Context, in post.UpdateCommentInput) (*domain.Comment, error)
	RemoveComment(ctx context.Context, id uuid.UUID) error
}

// PostHandler serves blog post REST endpoints.
type PostHandler struct {
	svc postService
	log *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc postService, logger *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: logger.With("handler", "post")}
}

type postWriteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type commentWriteRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), post.CreateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(created))
}

// All handles GET /api/posts.
func (h *PostHandler) All(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.All(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toPostWithAuthorResponse(&posts[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// ByID handles GET /api/posts/{id}.
func (h *PostHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.svc.ByID(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := postDetailResponse{
		postResponse: toPostWithAuthorResponse(&domain.PostWithAuthor{Post: detail.Post, Author: detail.Author}),
		Comments:     toCommentResponses(detail.Comments),
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req postWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), post.UpdateInput{ID: id, Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(updated))
}

// Remove handles DELETE /api/posts/{id}.
func (h *PostHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AddComment handles POST /api/posts/{id}/comments.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req commentWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.AddComment(r.Context(), post.AddCommentInput{PostID: id, Content: req.Content})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        created.ID.String(),
		"content":   created.Content,
		"createdAt": created.CreatedAt,
	})
}

// UpdateComment handles PUT /api/posts/comments/{commentId}.
func (h *PostHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}
	var req commentWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateComment(r.Context(), post.UpdateCommentInput{CommentID: id, Content: req.Content})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        updated.ID.String(),
		"content":   updated.Content,
		"updatedAt": updated.UpdatedAt,
	})
}

// RemoveComment handles DELETE /api/posts/comments/{commentId}.
func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}

	if err := h.svc.RemoveComment(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
