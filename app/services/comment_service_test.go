package services

import (
	"context"
	"testing"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	service := NewCommentService(store)

	postID, err := store.Insert(ctx, &models.PostInput{Title: "Test Post", Contents: "Test Content"})
	require.NoError(t, err)
	otherID, err := store.Insert(ctx, &models.PostInput{Title: "Other", Contents: "Other"})
	require.NoError(t, err)

	t.Run("no comments", func(t *testing.T) {
		comments, err := service.ListPostComments(ctx, postID)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("only the post's comments", func(t *testing.T) {
		for _, text := range []string{"one", "two"} {
			_, err := store.InsertComment(ctx, &models.CommentInput{PostID: postID, Text: text})
			require.NoError(t, err)
		}
		_, err := store.InsertComment(ctx, &models.CommentInput{PostID: otherID, Text: "elsewhere"})
		require.NoError(t, err)

		comments, err := service.ListPostComments(ctx, postID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, c := range comments {
			assert.Equal(t, postID, c.PostID)
			assert.Equal(t, "Test Post", c.Post)
		}
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := service.ListPostComments(ctx, 999)
		assertKind(t, err, errs.KindNotFound, errs.MsgPostNotFound)
	})

	t.Run("lookup failure", func(t *testing.T) {
		store.FailOn(mock.OpFindByID, errDisk)
		defer store.FailOn(mock.OpFindByID, nil)

		_, err := service.ListPostComments(ctx, postID)
		assertKind(t, err, errs.KindPersistence, MsgCommentsFailed)
	})

	t.Run("comment query failure", func(t *testing.T) {
		store.FailOn(mock.OpFindPostComments, errDisk)
		defer store.FailOn(mock.OpFindPostComments, nil)

		_, err := service.ListPostComments(ctx, postID)
		assertKind(t, err, errs.KindPersistence, MsgCommentsFailed)
		assert.ErrorIs(t, err, errDisk)
	})
}
