package event

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

const (
	minTextLen    = 3
	maxShortLen   = 255
	maxLongLen    = 2040
	maxCommentLen = 512
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

// checkDate validates that the event date is strictly in the future and
// strictly before the 2100 cap.
func checkDate(date, now time.Time) *domain.FieldError {
	switch {
	case date.IsZero():
		return &domain.FieldError{Field: "date", Message: "required"}
	case !date.After(now):
		return &domain.FieldError{Field: "date", Message: "must be in the future"}
	case !date.Before(maxEventDate):
		return &domain.FieldError{Field: "date", Message: "must be before the year 2100"}
	}
	return nil
}

// CreateInput is the input for creating an event.
type CreateInput struct {
	Title       string
	Address     string
	Description string
	Date        time.Time
}

// Validate checks the input fields against the given wall clock.
func (in *CreateInput) Validate(now time.Time) error {
	var errs []domain.FieldError
	if fe := checkText("title", in.Title, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("address", in.Address, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("description", in.Description, maxLongLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkDate(in.Date, now); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput is the input for updating an event.
type UpdateInput struct {
	ID          uuid.UUID
	Title       string
	Address     string
	Description string
	Date        time.Time
}

// Validate checks the input fields against the given wall clock.
func (in *UpdateInput) Validate(now time.Time) error {
	var errs []domain.FieldError
	if in.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if fe := checkText("title", in.Title, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("address", in.Address, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("description", in.Description, maxLongLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkDate(in.Date, now); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddCommentInput is the input for commenting on an event.
type AddCommentInput struct {
	EventID uuid.UUID
	Content string
}

// Validate checks the input fields.
func (in *AddCommentInput) Validate() error {
	var errs []domain.FieldError
	if in.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "eventId", Message: "required"})
	}
	if fe := checkText("content", in.Content, maxCommentLen); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateCommentInput is the input for editing a comment.
type UpdateCommentInput struct {
	CommentID uuid.UUID
	Content   string
}

// Validate checks the input fields.
func (in *UpdateCommentInput) Validate() error {
	var errs []domain.FieldError
	if in.CommentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "commentId", Message: "required"})
	}
	if fe := checkText("content", in.Content, maxCommentLen); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
