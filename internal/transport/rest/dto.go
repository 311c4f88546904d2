package rest

import (
	"time"

	"github.com/heartmarshall/communityhub-backend/internal/domain"
)

type authorResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

func toAuthorResponse(a domain.Author) authorResponse {
	return authorResponse{ID: a.ID.String(), Name: a.Name, Image: a.Image}
}

type commentResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    authorResponse `json:"author"`
}

func toCommentResponses(comments []domain.CommentWithAuthor) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = commentResponse{
			ID:        c.ID.String(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    toAuthorResponse(c.Author),
		}
	}
	return out
}

type postResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Author    *authorResponse `json:"author,omitempty"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostWithAuthorResponse(p *domain.PostWithAuthor) postResponse {
	out := toPostResponse(&p.Post)
	author := toAuthorResponse(p.Author)
	out.Author = &author
	return out
}

type postDetailResponse struct {
	postResponse
	Comments []commentResponse `json:"comments"`
}

type eventResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Author      *authorResponse `json:"author,omitempty"`
}

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Address:     e.Address,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type eventDetailResponse struct {
	eventResponse
	Comments []commentResponse `json:"comments"`
}

type itemResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Author      *authorResponse `json:"author,omitempty"`
}

func toItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:          it.ID.String(),
		Title:       it.Title,
		Location:    it.Location,
		Description: it.Description,
		Images:      it.Images,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toItemWithAuthorResponse(it *domain.ItemWithAuthor) itemResponse {
	out := toItemResponse(&it.Item)
	author := toAuthorResponse(it.Author)
	out.Author = &author
	return out
}

type itemDetailResponse struct {
	itemResponse
	OwnerItems []itemResponse `json:"ownerItems"`
}

type userResponse struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Image   *string `json:"image,omitempty"`
	IsAdmin bool    `json:"isAdmin"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Image:   u.Image,
		IsAdmin: u.IsAdmin,
	}
}
