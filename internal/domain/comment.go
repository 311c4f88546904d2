package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentKind selects which comment table a comment lives in.
type CommentKind string

const (
	CommentKindPost  CommentKind = "post"
	CommentKindEvent CommentKind = "event"
)

// Comment is attached to a post or an event. ParentID references the
// commented resource; UserID is the comment's author.
type Comment struct {
	ID        uuid.UUID
	ParentID  uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithAuthor is a comment joined with its author's display fields.
type CommentWithAuthor struct {
	Comment
	Author Author
}
