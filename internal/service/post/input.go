package post

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

const (
	minTextLen    = 3
	maxTitleLen   = 255
	maxContentLen = 2040
	maxCommentLen = 512
)

// checkText validates a required text field against length bounds.
// Returns nil when the value is acceptable.
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

// CreateInput is the input for creating a post.
type CreateInput struct {
	Title   string
	Content string
}

// Validate checks the input fields.
func (in *CreateInput) Validate() error {
	var errs []domain.FieldError
	if fe := checkText("title", in.Title, maxTitleLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("content", in.Content, maxContentLen); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput is the input for updating a post.
type UpdateInput struct {
	ID      uuid.UUID
	Title   string
	Content string
}

// Validate checks the input fields.
func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError
	if in.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if fe := checkText("title", in.Title, maxTitleLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("content", in.Content, maxContentLen); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddCommentInput is the input for commenting on a post.
type AddCommentInput struct {
	PostID  uuid.UUID
	Content string
}

// Validate checks the input fields.
func (in *AddCommentInput) Validate() error {
	var errs []domain.FieldError
	if in.PostID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "postId", Message: "required"})
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
