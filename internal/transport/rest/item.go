package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/internal/service/item"
)

// itemService defines the minimal interface needed by ItemHandler.
type itemService interface {
	Create(ctx context.Context, in item.CreateInput) (*domain.Item, error)
	All(ctx context.Context) ([]domain.ItemWithAuthor, error)
	ByID(ctx context.Context, id uuid.UUID) (*domain.ItemDetail, error)
	Update(ctx context.Context, in item.UpdateInput) (*domain.Item, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// ItemHandler serves marketplace listing REST endpoints.
type ItemHandler struct {
	svc itemService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "item")}
}

type itemWriteRequest struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), item.CreateInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(created))
}

// All handles GET /api/items.
func (h *ItemHandler) All(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.All(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]itemResponse, len(items))
	for i := range items {
		out[i] = toItemWithAuthorResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// ByID handles GET /api/items/{id}.
func (h *ItemHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.svc.ByID(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := itemDetailResponse{
		itemResponse: toItemWithAuthorResponse(&domain.ItemWithAuthor{Item: detail.Item, Author: detail.Author}),
		OwnerItems:   make([]itemResponse, len(detail.OwnerItems)),
	}
	for i := range detail.OwnerItems {
		resp.OwnerItems[i] = toItemResponse(&detail.OwnerItems[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req itemWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), item.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(updated))
}

// Remove handles DELETE /api/items/{id}.
func (h *ItemHandler) Remove(w http.ResponseWriter, r *http.Request) {
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
