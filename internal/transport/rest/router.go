package rest

import "net/http"

// Handlers aggregates the REST handlers mounted by the router.
type Handlers struct {
	Posts  *PostHandler
	Events *EventHandler
	Items  *ItemHandler
	Media  *MediaHandler
	Auth   *AuthHandler
	Health *HealthHandler
}

// NewRouter mounts all REST routes on a fresh mux. Authentication is
// resolved by middleware; handlers see identity via context.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Posts.
	mux.HandleFunc("POST /api/posts", h.Posts.Create)
	mux.HandleFunc("GET /api/posts", h.Posts.All)
	mux.HandleFunc("GET /api/posts/{id}", h.Posts.ByID)
	mux.HandleFunc("PUT /api/posts/{id}", h.Posts.Update)
	mux.HandleFunc("DELETE /api/posts/{id}", h.Posts.Remove)
	mux.HandleFunc("POST /api/posts/{id}/comments", h.Posts.AddComment)
	mux.HandleFunc("PUT /api/posts/comments/{commentId}", h.Posts.UpdateComment)
	mux.HandleFunc("DELETE /api/posts/comments/{commentId}", h.Posts.RemoveComment)

	// Events.
	mux.HandleFunc("POST /api/events", h.Events.Create)
	mux.HandleFunc("GET /api/events", h.Events.All)
	mux.HandleFunc("GET /api/events/{id}", h.Events.ByID)
	mux.HandleFunc("PUT /api/events/{id}", h.Events.Update)
	mux.HandleFunc("DELETE /api/events/{id}", h.Events.Remove)
	mux.HandleFunc("POST /api/events/{id}/comments", h.Events.AddComment)
	mux.HandleFunc("PUT /api/events/comments/{commentId}", h.Events.UpdateComment)
	mux.HandleFunc("DELETE /api/events/comments/{commentId}", h.Events.RemoveComment)

	// Items. No comment routes: listings are contact-the-seller only.
	mux.HandleFunc("POST /api/items", h.Items.Create)
	mux.HandleFunc("GET /api/items", h.Items.All)
	mux.HandleFunc("GET /api/items/{id}", h.Items.ByID)
	mux.HandleFunc("PUT /api/items/{id}", h.Items.Update)
	mux.HandleFunc("DELETE /api/items/{id}", h.Items.Remove)

	// Media + contact.
	mux.HandleFunc("POST /api/media/upload-grant", h.Media.AuthorizeUpload)
	mux.HandleFunc("POST /api/contact", h.Media.Contact)

	// Auth.
	mux.HandleFunc("POST /api/auth/signin/request", h.Auth.RequestSignIn)
	mux.HandleFunc("POST /api/auth/signin/verify", h.Auth.VerifySignIn)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("GET /api/auth/me", h.Auth.Me)

	// Probes.
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /live", h.Health.Live)

	return mux
}
