package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/internal/service/event"
)

// eventService defines the minimal interface needed by EventHandler.
type eventService interface {
	Create(ctx context.Context, in event.CreateInput) (*domain.Event, error)
	All(ctx context.Context) ([]domain.Event, error)
	ByID(ctx context.Context, id uuid.UUID) (*domain.EventDetail, error)
	Update(ctx context.Context, in event.UpdateInput) (*domain.Event, error)
	Remove(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, in event.AddCommentInput) (*domain.Comment, error)
	UpdateComment(ctx context.Context, in event.UpdateCommentInput) (*domain.Comment, error)
	RemoveComment(ctx context.Context, id uuid.UUID) error
}

// EventHandler serves community event REST endpoints. Author display
// fields on list responses are resolved through a batching loader, one
// SQL call per request regardless of list size.
type EventHandler struct {
	svc   eventService
	users userLister
	log   *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, users userLister, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, users: users, log: logger.With("handler", "event")}
}

type eventWriteRequest struct {
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), event.CreateInput{
		Title:       req.Title,
		Address:     req.Address,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(created))
}

// All handles GET /api/events.
func (h *EventHandler) All(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.All(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	ids := make([]uuid.UUID, len(events))
	for i := range events {
		ids[i] = events[i].UserID
	}

	loader := newAuthorLoader(h.users)
	authors, errs := loader.LoadMany(r.Context(), ids)()
	_ = errs // Missing authors leave the field empty rather than failing the list.

	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
		if i < len(authors) {
			author := toAuthorResponse(authors[i])
			if author.ID != uuid.Nil.String() {
				out[i].Author = &author
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ByID handles GET /api/events/{id}.
func (h *EventHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.svc.ByID(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := eventDetailResponse{
		eventResponse: toEventResponse(&detail.Event),
		Comments:      toCommentResponses(detail.Comments),
	}
	if author, loadErr := newAuthorLoader(h.users).Load(r.Context(), detail.UserID)(); loadErr == nil {
		a := toAuthorResponse(author)
		resp.Author = &a
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req eventWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), event.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Address:     req.Address,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(updated))
}

// Remove handles DELETE /api/events/{id}.
func (h *EventHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

// AddComment handles POST /api/events/{id}/comments.
func (h *EventHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req commentWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.AddComment(r.Context(), event.AddCommentInput{EventID: id, Content: req.Content})
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

// UpdateComment handles PUT /api/events/comments/{commentId}.
func (h *EventHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}
	var req commentWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateComment(r.Context(), event.UpdateCommentInput{CommentID: id, Content: req.Content})
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

// RemoveComment handles DELETE /api/events/comments/{commentId}.
func (h *EventHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
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
