package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

func TestRequestID_Generated(t *testing.T) {
	var fromCtx string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = ctxutil.RequestIDFromCtx(r.Context())
	})

	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if fromCtx == "" {
		t.Error("expected a generated request id in context")
	}
	if got := rec.Header().Get("X-Request-Id"); got != fromCtx {
		t.Errorf("response header %q must match context id %q", got, fromCtx)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	var fromCtx string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = ctxutil.RequestIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, req)

	if fromCtx != "client-supplied-id" {
		t.Errorf("context id: got %q, want the client-supplied one", fromCtx)
	}
}
