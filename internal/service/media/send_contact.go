package media

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/mailer"
)

// SendContact validates a contact form submission and relays it to the
// configured inbox. Open to anonymous visitors.
func (s *Service) SendContact(ctx context.Context, in ContactInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	html, err := mailer.RenderContact(mailer.ContactData{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Comment: in.Comment,
	})
	if err != nil {
		return fmt.Errorf("render contact mail: %w", err)
	}

	err = s.mail.Send(ctx, mailer.Message{
		To:      s.contactTo,
		Subject: "[contact] " + in.Subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}

	s.log.InfoContext(ctx, "contact message relayed", "from", in.Email)
	return nil
}
