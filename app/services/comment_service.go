package services

import (
	"context"
	"errors"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories"
)

// MsgCommentsFailed is returned when the comments of a post cannot be read.
const MsgCommentsFailed = "The comments information could not be retrieved"

// CommentService handles read access to the comments of a post
type CommentService struct {
	store repositories.PostStore
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.PostStore) *CommentService {
	return &CommentService{store: store}
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	// Verify post exists
	_, err := s.store.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errs.NotFound()
	}
	if err != nil {
		return nil, errs.Persistence(MsgCommentsFailed, err)
	}

	comments, err := s.store.FindPostComments(ctx, postID)
	if err != nil {
		return nil, errs.Persistence(MsgCommentsFailed, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}
