package media

import (
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

const (
	minTextLen    = 3
	maxShortLen   = 255
	maxCommentLen = 2040
)

func checkText(field, value string, max int) *domain.FieldError {
	switch n := utf8.RuneCountInString(value); {
	case n == 0:
		return &domain.FieldError{Field: field, Message: "required"}
	case n < minTextLen:
		return &domain.FieldError{Field: field, Message: fmt.Sprintf("too short (min %d)", minTextLen)}
	case n > max:
		return &domain.FieldError{Field: field, Message: fmt.Sprintf("too long (max %d)", max)}
	}
	return nil
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Comment string
}

// Validate checks the input fields.
func (in *ContactInput) Validate() error {
	var errs []domain.FieldError
	if fe := checkText("name", in.Name, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("email", in.Email, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if fe := checkText("subject", in.Subject, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("comment", in.Comment, maxCommentLen); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
