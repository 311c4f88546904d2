package item

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

const (
	minTextLen  = 3
	maxShortLen = 255
	maxLongLen  = 2040
	maxImages   = 5
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

// checkImages validates the image URL list: one to five entries, each a
// well-formed absolute http or https URL.
func checkImages(images []string) *domain.FieldError {
	if len(images) == 0 {
		return &domain.FieldError{Field: "images", Message: "at least one image is required"}
	}
	if len(images) > maxImages {
		return &domain.FieldError{Field: "images", Message: fmt.Sprintf("too many images (max %d)", maxImages)}
	}
	for _, raw := range images {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return &domain.FieldError{Field: "images", Message: "must be valid http(s) URLs"}
		}
	}
	return nil
}

// CreateInput is the input for creating an item.
type CreateInput struct {
	Title       string
	Location    string
	Description string
	Images      []string
}

// Validate checks the input fields.
func (in *CreateInput) Validate() error {
	var errs []domain.FieldError
	if fe := checkText("title", in.Title, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("location", in.Location, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("description", in.Description, maxLongLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkImages(in.Images); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput is the input for updating an item. Images replace the
// stored list wholesale.
type UpdateInput struct {
	ID          uuid.UUID
	Title       string
	Location    string
	Description string
	Images      []string
}

// Validate checks the input fields.
func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError
	if in.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if fe := checkText("title", in.Title, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("location", in.Location, maxShortLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkText("description", in.Description, maxLongLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := checkImages(in.Images); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
