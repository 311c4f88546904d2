package client

import (
	"context"
	"errors"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

// ErrTransport marks network/server-unavailable failures. Wrap the
// underlying cause: fmt.Errorf("call post.update: %w", ErrTransport).
var ErrTransport = errors.New("transport failure")

// ErrorKind is the tagged classification of a settled mutation or query
// error, used to decide what to surface: field messages, a generic
// denial, a sign-in redirect, a not-found page, or a retry prompt.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthenticated"
	case KindForbidden:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Context cancellation and deadline errors count
// as transport failures: from the consumer's point of view the call did
// not produce a server verdict.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, domain.ErrValidation):
		return KindValidation
	case errors.Is(err, domain.ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return KindForbidden
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrTransport),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindTransport
	default:
		return KindUnknown
	}
}

// FieldErrors extracts the field → message mapping from a validation
// error so forms can route messages to specific inputs. Returns nil for
// every other error kind.
func FieldErrors(err error) map[string]string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields()
	}
	return nil
}
