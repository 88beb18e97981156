package mock

import (
	"context"
	"sort"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

// Operation names accepted by FailOn.
const (
	OpFind             = "find"
	OpFindByID         = "findById"
	OpInsert           = "insert"
	OpUpdate           = "update"
	OpRemove           = "remove"
	OpFindPostComments = "findPostComments"
	OpInsertComment    = "insertComment"
)

// Store is an in-memory repositories.Store. It is safe for concurrent use
// and hands out copies, so callers never alias stored records.
type Store struct {
	mutex         sync.RWMutex
	posts         map[int]*models.Post
	comments      map[int]*models.Comment
	nextPostID    int
	nextCommentID int
	failures      map[string]error
	calls         map[string]int

	// see MissRefetch
	refetchMisses int
	pendingMiss   bool
}

var _ repositories.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear drops all records, injected failures and call counts.
func (m *Store) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
	m.comments = make(map[int]*models.Comment)
	m.nextPostID = 1
	m.nextCommentID = 1
	m.failures = make(map[string]error)
	m.calls = make(map[string]int)
	m.refetchMisses = 0
	m.pendingMiss = false
}

// FailOn makes every later call of op return err. A nil err clears it.
func (m *Store) FailOn(op string, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// MissRefetch makes the first FindByID after each of the next n successful
// Insert or Update calls report ErrNotFound, as if the row vanished.
func (m *Store) MissRefetch(n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.refetchMisses = n
}

// Calls reports how many times op was invoked.
func (m *Store) Calls(op string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.calls[op]
}

func (m *Store) Close() error {
	return nil
}

// enter records the call and returns the injected failure, if any. The
// caller must hold the lock.
func (m *Store) enter(ctx context.Context, op string) error {
	m.calls[op]++
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.failures[op]
}

func (m *Store) afterWrite() {
	if m.refetchMisses > 0 {
		m.refetchMisses--
		m.pendingMiss = true
	}
}

func (m *Store) Find(ctx context.Context) ([]*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpFind); err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post.Clone())
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *Store) FindByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpFindByID); err != nil {
		return nil, err
	}
	if m.pendingMiss {
		m.pendingMiss = false
		return nil, repositories.ErrNotFound
	}

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post.Clone(), nil
}

func (m *Store) Insert(ctx context.Context, in *models.PostInput) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpInsert); err != nil {
		return 0, err
	}

	post := &models.Post{ID: m.nextPostID, Title: in.Title, Contents: in.Contents}
	post.BeforeCreate()
	m.nextPostID++
	m.posts[post.ID] = post
	m.afterWrite()
	return post.ID, nil
}

func (m *Store) Update(ctx context.Context, id int, in *models.PostInput) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpUpdate); err != nil {
		return 0, err
	}

	post, exists := m.posts[id]
	if !exists {
		return 0, nil
	}
	post.Apply(in)
	m.afterWrite()
	return 1, nil
}

func (m *Store) Remove(ctx context.Context, id int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpRemove); err != nil {
		return 0, err
	}

	if _, exists := m.posts[id]; !exists {
		return 0, nil
	}
	delete(m.posts, id)
	for cid, comment := range m.comments {
		if comment.PostID == id {
			delete(m.comments, cid)
		}
	}
	return 1, nil
}

func (m *Store) FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpFindPostComments); err != nil {
		return nil, err
	}

	title := ""
	if post, exists := m.posts[postID]; exists {
		title = post.Title
	}
	comments := make([]*models.Comment, 0)
	for _, comment := range m.comments {
		if comment.PostID == postID {
			cp := comment.Clone()
			cp.Post = title
			comments = append(comments, cp)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *Store) InsertComment(ctx context.Context, in *models.CommentInput) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if err := m.enter(ctx, OpInsertComment); err != nil {
		return 0, err
	}

	if _, exists := m.posts[in.PostID]; !exists {
		return 0, repositories.ErrNotFound
	}
	comment := &models.Comment{ID: m.nextCommentID, PostID: in.PostID, Text: in.Text}
	comment.BeforeCreate()
	m.nextCommentID++
	m.comments[comment.ID] = comment
	return comment.ID, nil
}
