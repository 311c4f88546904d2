package auth

import (
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

const (
	minTextLen  = 3
	maxShortLen = 255

	// bcrypt truncates inputs past 72 bytes, so longer passwords are
	// rejected rather than silently clipped.
	minPasswordLen = 8
	maxPasswordLen = 72
)

func checkEmail(email string) *domain.FieldError {
	switch n := utf8.RuneCountInString(email); {
	case n == 0:
		return &domain.FieldError{Field: "email", Message: "required"}
	case n < minTextLen:
		return &domain.FieldError{Field: "email", Message: fmt.Sprintf("too short (min %d)", minTextLen)}
	case n > maxShortLen:
		return &domain.FieldError{Field: "email", Message: fmt.Sprintf("too long (max %d)", maxShortLen)}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &domain.FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func checkPassword(password string) *domain.FieldError {
	switch n := len(password); {
	case n == 0:
		return &domain.FieldError{Field: "password", Message: "required"}
	case n < minPasswordLen:
		return &domain.FieldError{Field: "password", Message: fmt.Sprintf("too short (min %d)", minPasswordLen)}
	case n > maxPasswordLen:
		return &domain.FieldError{Field: "password", Message: fmt.Sprintf("too long (max %d)", maxPasswordLen)}
	}
	return nil
}

// RegisterInput is the input for password registration.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Validate checks the input fields.
func (in *RegisterInput) Validate() error {
	var errs []domain.FieldError
	if fe := checkEmail(in.Email); fe != nil {
		errs = append(errs, *fe)
	}
	switch n := utf8.RuneCountInString(in.Name); {
	case n == 0:
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case n < minTextLen:
		errs = append(errs, domain.FieldError{Field: "name", Message: fmt.Sprintf("too short (min %d)", minTextLen)})
	case n > maxShortLen:
		errs = append(errs, domain.FieldError{Field: "name", Message: fmt.Sprintf("too long (max %d)", maxShortLen)})
	}
	if fe := checkPassword(in.Password); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LoginInput is the input for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks the input fields.
func (in *LoginInput) Validate() error {
	var errs []domain.FieldError
	if fe := checkEmail(in.Email); fe != nil {
		errs = append(errs, *fe)
	}
	if in.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
