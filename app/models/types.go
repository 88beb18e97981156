package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a blog post.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment represents a comment on a blog post. Post holds the parent
// post's title.
type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	PostID    int       `json:"post_id"`
	Post      string    `json:"post"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput carries the client-writable fields of a post.
type PostInput struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// CommentInput carries the fields needed to attach a comment to a post.
type CommentInput struct {
	PostID int    `validate:"required,gt=0"`
	Text   string `validate:"required"`
}
