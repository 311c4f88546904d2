package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a marketplace listing with up to five image URLs.
// Items have no comments.
type Item struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Location    string
	Description string
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemWithAuthor is an item joined with its owner's display fields.
type ItemWithAuthor struct {
	Item
	Author Author
}

// ItemDetail is the byId projection: the item, its author, and up to
// three other items by the same owner (newest first, excluding itself).
type ItemDetail struct {
	Item
	Author     Author
	OwnerItems []Item
}
