package repositories

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// FindPostComments retrieves all comments for a post ordered by id
func (s *BadgerStore) FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := s.view(ctx, func(txn *badger.Txn) error {
		title := ""
		if post, err := getPost(txn, postID); err == nil {
			title = post.Title
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to read comment: %w", err)
			}
			comment.Post = title
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// InsertComment attaches a new comment to an existing post
func (s *BadgerStore) InsertComment(ctx context.Context, in *models.CommentInput) (int, error) {
	var id int
	err := s.update(ctx, func(txn *badger.Txn) error {
		if _, err := getPost(txn, in.PostID); err != nil {
			return err
		}

		var err error
		id, err = getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}

		comment := &models.Comment{ID: id, PostID: in.PostID, Text: in.Text}
		comment.BeforeCreate()
		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentKey(in.PostID, id), data)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// deleteComments drops every comment of a post inside txn.
func deleteComments(txn *badger.Txn, postID int) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	prefix := commentPrefix(postID)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
