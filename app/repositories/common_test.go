package repositories

import (
	"testing"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetNextID(t *testing.T) {
	db := openTestDB(t)

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, PostSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			commentID, err := getNextID(txn, CommentSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, commentID, "Comment sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("persistence", func(t *testing.T) {
		require.NoError(t, db.Update(func(txn *badger.Txn) error {
			_, err := getNextID(txn, "test:seq")
			return err
		}))

		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, "test:seq")
			assert.NoError(t, err)
			assert.Equal(t, 2, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("corrupt sequence", func(t *testing.T) {
		require.NoError(t, db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte("bad:seq"), []byte("x"))
		}))
		err := db.Update(func(txn *badger.Txn) error {
			_, err := getNextID(txn, "bad:seq")
			return err
		})
		assert.Error(t, err)
	})
}

func TestKeysSortByID(t *testing.T) {
	assert.Less(t, string(postKey(9)), string(postKey(10)))
	assert.Less(t, string(commentKey(2, 9)), string(commentKey(2, 10)))
	assert.Less(t, string(commentKey(2, 99)), string(commentKey(3, 1)))
}

func TestMarshalEntity(t *testing.T) {
	t.Run("marshal post", func(t *testing.T) {
		post := &models.Post{ID: 1, Title: "Test Post", Contents: "Test Content"}

		data, err := marshalEntity(post)
		assert.NoError(t, err)

		var unmarshaled models.Post
		assert.NoError(t, unmarshalEntity(data, &unmarshaled))
		assert.Equal(t, post.ID, unmarshaled.ID)
		assert.Equal(t, post.Title, unmarshaled.Title)
		assert.Equal(t, post.Contents, unmarshaled.Contents)
	})

	t.Run("marshal invalid entity", func(t *testing.T) {
		invalidEntity := struct {
			Ch chan int
		}{
			Ch: make(chan int),
		}

		_, err := marshalEntity(invalidEntity)
		assert.Error(t, err)
	})

	t.Run("unmarshal invalid JSON", func(t *testing.T) {
		var post models.Post
		assert.Error(t, unmarshalEntity([]byte(`{"id":1,invalid json}`), &post))
	})
}
