package repositories

import (
	"context"

	"postboard/app/models"
)

// PostStore defines the data access the posts API depends on.
//
// FindByID returns ErrNotFound when no post has the id. Update and Remove
// report the number of affected posts; zero means the id did not exist.
type PostStore interface {
	Find(ctx context.Context) ([]*models.Post, error)
	FindByID(ctx context.Context, id int) (*models.Post, error)
	Insert(ctx context.Context, in *models.PostInput) (int, error)
	Update(ctx context.Context, id int, in *models.PostInput) (int, error)
	Remove(ctx context.Context, id int) (int, error)
	FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error)
}

// CommentStore writes comments. The HTTP API never calls it; seeding does.
type CommentStore interface {
	InsertComment(ctx context.Context, in *models.CommentInput) (int, error)
}

// Store is a closable PostStore that also accepts comments.
type Store interface {
	PostStore
	CommentStore
	Close() error
}
