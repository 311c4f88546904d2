package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a community event. UserID is the owning user.
type Event struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Address     string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventDetail is the byId projection: the event plus its comments
// ordered by creation time ascending.
type EventDetail struct {
	Event
	Comments []CommentWithAuthor
}
