// Package media implements the upload-grant and contact-form use cases.
package media

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/communityhub-backend/internal/adapter/mailer"
)

// uploadSigner issues signed upload grants.
type uploadSigner interface {
	AuthorizeUpload(contentType string) (*blobstore.Grant, error)
}

// mailSender delivers outbound email.
type mailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Service contains media and contact business logic.
type Service struct {
	log       *slog.Logger
	signer    uploadSigner
	mail      mailSender
	contactTo string
}

// NewService creates a new media service. contactTo is the inbox that
// receives contact form messages.
func NewService(logger *slog.Logger, signer uploadSigner, mail mailSender, contactTo string) *Service {
	return &Service{
		log:       logger.With("service", "media"),
		signer:    signer,
		mail:      mail,
		contactTo: contactTo,
	}
}
