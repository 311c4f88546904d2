package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"validation sentinel", domain.ErrValidation, KindValidation},
		{"validation struct", domain.NewValidationError("title", "too short"), KindValidation},
		{"wrapped validation", fmt.Errorf("create post: %w", domain.NewValidationError("title", "too short")), KindValidation},
		{"unauthenticated", domain.ErrUnauthorized, KindUnauthorized},
		{"forbidden", fmt.Errorf("remove comment: %w", domain.ErrForbidden), KindForbidden},
		{"not found", domain.ErrNotFound, KindNotFound},
		{"transport", fmt.Errorf("dial: %w", ErrTransport), KindTransport},
		{"cancelled", context.Canceled, KindTransport},
		{"deadline", context.DeadlineExceeded, KindTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	ve := domain.NewValidationErrors([]domain.FieldError{
		{Field: "title", Message: "must be at least 3 characters"},
		{Field: "content", Message: "must be at least 3 characters"},
	})
	wrapped := fmt.Errorf("create post: %w", ve)

	fields := FieldErrors(wrapped)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields["title"] != "must be at least 3 characters" {
		t.Errorf("title message: %q", fields["title"])
	}

	if FieldErrors(domain.ErrForbidden) != nil {
		t.Error("non-validation error must yield nil fields")
	}
	if FieldErrors(nil) != nil {
		t.Error("nil error must yield nil fields")
	}
}
