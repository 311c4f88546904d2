package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog post. UserID is the owning user, set at creation and
// immutable thereafter.
type Post struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostWithAuthor is a post joined with its owner's display fields.
type PostWithAuthor struct {
	Post
	Author Author
}

// PostDetail is the byId projection: the post, its author, and its
// comments ordered by creation time ascending.
type PostDetail struct {
	Post
	Author   Author
	Comments []CommentWithAuthor
}
