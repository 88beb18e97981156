package repositories

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// Find retrieves every post ordered by id
func (s *BadgerStore) Find(ctx context.Context) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	err := s.view(ctx, func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to read post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (s *BadgerStore) FindByID(ctx context.Context, id int) (*models.Post, error) {
	var post *models.Post
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Insert creates a new post and returns its generated id
func (s *BadgerStore) Insert(ctx context.Context, in *models.PostInput) (int, error) {
	var id int
	err := s.update(ctx, func(txn *badger.Txn) error {
		var err error
		id, err = getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}

		post := &models.Post{ID: id, Title: in.Title, Contents: in.Contents}
		post.BeforeCreate()
		return putPost(txn, post)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites title and contents of an existing post
func (s *BadgerStore) Update(ctx context.Context, id int, in *models.PostInput) (int, error) {
	var affected int
	err := s.update(ctx, func(txn *badger.Txn) error {
		affected = 0
		post, err := getPost(txn, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		post.Apply(in)
		if err := putPost(txn, post); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Remove deletes a post together with its comments
func (s *BadgerStore) Remove(ctx context.Context, id int) (int, error) {
	var affected int
	err := s.update(ctx, func(txn *badger.Txn) error {
		affected = 0
		key := postKey(id)
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := deleteComments(txn, id); err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func getPost(txn *badger.Txn, id int) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}

func putPost(txn *badger.Txn, post *models.Post) error {
	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return txn.Set(postKey(post.ID), data)
}
