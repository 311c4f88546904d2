package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// tokenValidator resolves a bearer token into a caller identity.
type tokenValidator interface {
	ValidateToken(token string) (ctxutil.Identity, error)
}

// Auth attaches the caller identity to the request context. Requests
// without a bearer token pass through anonymously; requests with an
// invalid token are rejected.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			identity, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
