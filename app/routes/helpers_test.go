package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"postboard/app/models"
	"postboard/app/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testStores opens one empty store per real driver.
var testStores = map[string]func(t *testing.T) repositories.Store{
	"badger": func(t *testing.T) repositories.Store {
		s, err := repositories.OpenBadger("")
		require.NoError(t, err)
		return s
	},
	"sqlite": func(t *testing.T) repositories.Store {
		s, err := repositories.OpenSQLite(filepath.Join(t.TempDir(), "posts.db"))
		require.NoError(t, err)
		return s
	},
}

func setupTestRouter(t *testing.T, store repositories.Store) http.Handler {
	t.Helper()
	t.Cleanup(func() { store.Close() })
	return New(store, Options{Logger: zerolog.Nop()})
}

func setupTestPost(t *testing.T, store repositories.Store, title, contents string) int {
	t.Helper()
	id, err := store.Insert(context.Background(), &models.PostInput{Title: title, Contents: contents})
	require.NoError(t, err)
	return id
}

func setupTestComment(t *testing.T, store repositories.Store, postID int, text string) int {
	t.Helper()
	id, err := store.InsertComment(context.Background(), &models.CommentInput{PostID: postID, Text: text})
	require.NoError(t, err)
	return id
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, w, &body)
	msg, _ := body["message"].(string)
	return msg
}
