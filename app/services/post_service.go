package services

import (
	"context"
	"errors"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories"
)

// Client-facing messages for store failures, one per operation.
const (
	MsgListFailed   = "The posts information could not be retrieved"
	MsgGetFailed    = "The post information could not be retrieved"
	MsgCreateFailed = "There was an error while saving the post to the database"
	MsgUpdateFailed = "The post information could not be modified"
	MsgDeleteFailed = "The post could not be removed"
)

// PostService handles business logic for blog posts. Every error it
// returns is an *errs.Error.
type PostService struct {
	store repositories.PostStore
}

// NewPostService creates a new PostService
func NewPostService(store repositories.PostStore) *PostService {
	return &PostService{store: store}
}

// ListPosts returns every post.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.store.Find(ctx)
	if err != nil {
		return nil, errs.Persistence(MsgListFailed, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	return s.find(ctx, id, MsgGetFailed)
}

// CreatePost validates in, stores it and reads the stored post back.
func (s *PostService) CreatePost(ctx context.Context, in *models.PostInput) (*models.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, in)
	if err != nil {
		return nil, errs.Persistence(MsgCreateFailed, err)
	}

	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Persistence(MsgCreateFailed, err)
	}
	return post, nil
}

// UpdatePost validates in before checking that the post exists, then
// writes and reads the post back.
func (s *PostService) UpdatePost(ctx context.Context, id int, in *models.PostInput) (*models.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id, MsgUpdateFailed); err != nil {
		return nil, err
	}

	n, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, errs.Persistence(MsgUpdateFailed, err)
	}
	if n == 0 {
		// removed between the existence check and the write
		return nil, errs.NotFound()
	}

	return s.find(ctx, id, MsgUpdateFailed)
}

// DeletePost removes a post and returns it as it was before removal.
func (s *PostService) DeletePost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.find(ctx, id, MsgDeleteFailed)
	if err != nil {
		return nil, err
	}

	n, err := s.store.Remove(ctx, id)
	if err != nil {
		return nil, errs.Persistence(MsgDeleteFailed, err)
	}
	if n == 0 {
		return nil, errs.NotFound()
	}
	return post, nil
}

// find maps a missing post to NotFound and any other store error to a
// Persistence error carrying failMsg.
func (s *PostService) find(ctx context.Context, id int, failMsg string) (*models.Post, error) {
	post, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errs.NotFound()
	}
	if err != nil {
		return nil, errs.Persistence(failMsg, err)
	}
	return post, nil
}

func validateInput(in *models.PostInput) error {
	if in == nil || in.Validate() != nil {
		return errs.Validation()
	}
	return nil
}
