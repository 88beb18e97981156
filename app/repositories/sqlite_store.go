package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"postboard/app/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database with a posts table and
// a comments table keyed to it by post_id.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens the database at path and creates the tables if they do
// not exist yet.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps the pragmas below in effect for every query.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			contents TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE ON UPDATE CASCADE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS comments_post_id ON comments(post_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Find(ctx context.Context) ([]*models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, contents, created_at, updated_at FROM posts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id int) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, contents, created_at, updated_at FROM posts WHERE id = ?`, id)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, in *models.PostInput) (int, error) {
	now := formatTime(time.Now())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, contents, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		in.Title, in.Contents, now, now)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int, in *models.PostInput) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, contents = ?, updated_at = ? WHERE id = ?`,
		in.Title, in.Contents, formatTime(time.Now()), id)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}

func (s *SQLiteStore) Remove(ctx context.Context, id int) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}

func (s *SQLiteStore) FindPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.text, c.post_id, p.title, c.created_at, c.updated_at
		FROM comments c
		JOIN posts p ON c.post_id = p.id
		WHERE c.post_id = ?
		ORDER BY c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var (
			c                models.Comment
			created, updated string
		)
		if err := rows.Scan(&c.ID, &c.Text, &c.PostID, &c.Post, &created, &updated); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *SQLiteStore) InsertComment(ctx context.Context, in *models.CommentInput) (int, error) {
	if _, err := s.FindByID(ctx, in.PostID); err != nil {
		return 0, err
	}
	now := formatTime(time.Now())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (text, post_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		in.Text, in.PostID, now, now)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		p                models.Post
		created, updated string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Contents, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
