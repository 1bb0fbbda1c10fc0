package models

import (
	"time"
)

// Post defines a published announcement based on the 'posts' table.
// Posts are publicly readable and addressed by slug.
type Post struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Annual General Meeting"`
	Slug        string    `json:"slug" db:"slug" example:"annual-general-meeting"`
	Description string    `json:"description" db:"description"`
	Image       *string   `json:"image,omitempty" db:"image"`
	AuthorID    *int64    `json:"authorId,omitempty" db:"author_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Comments is populated on detail reads, newest first
	Comments []Comment `json:"comments,omitempty"`
}

// Comment defines a public comment on a post based on the 'comments' table.
// Commenting does not require an account, so the commenter's name travels
// with the comment.
type Comment struct {
	ID        int64     `json:"id" db:"id" example:"5"`
	PostID    int64     `json:"postId" db:"post_id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Anonymous"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
