package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/communityhub-backend/internal/service/media"
)

// mediaService defines the minimal interface needed by MediaHandler.
type mediaService interface {
	AuthorizeUpload(ctx context.Context, contentType string) (*blobstore.Grant, error)
	SendContact(ctx context.Context, in media.ContactInput) error
}

// MediaHandler serves upload-grant and contact REST endpoints.
type MediaHandler struct {
	svc mediaService
	log *slog.Logger
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(svc mediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{svc: svc, log: logger.With("handler", "media")}
}

type uploadGrantRequest struct {
	ContentType string `json:"contentType"`
}

type uploadGrantResponse struct {
	FileName  string `json:"fileName"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	ExpiresAt string `json:"expiresAt"`
}

// AuthorizeUpload handles POST /api/media/upload-grant.
func (h *MediaHandler) AuthorizeUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadGrantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	grant, err := h.svc.AuthorizeUpload(r.Context(), req.ContentType)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadGrantResponse{
		FileName:  grant.FileName,
		UploadURL: grant.UploadURL,
		PublicURL: grant.PublicURL,
		ExpiresAt: grant.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Comment string `json:"comment"`
}

// Contact handles POST /api/contact.
func (h *MediaHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.svc.SendContact(r.Context(), media.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
