// Package seed loads fixture posts and their comments into a store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"postboard/app/models"
	"postboard/app/repositories"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

type Fixture struct {
	Posts []FixturePost `yaml:"posts"`
}

type FixturePost struct {
	Title    string           `yaml:"title"`
	Contents string           `yaml:"contents"`
	Comments []FixtureComment `yaml:"comments"`
}

type FixtureComment struct {
	Text string `yaml:"text"`
}

// Result counts what Apply inserted.
type Result struct {
	Posts    int
	Comments int
}

// Default returns the built-in fixture.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file. An empty path selects the built-in fixture.
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML fixture. Every post needs a title
// and contents, and every comment needs text.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}

	for i, p := range fx.Posts {
		in := models.PostInput{Title: p.Title, Contents: p.Contents}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("seed post %d: %w", i, err)
		}
		for j, c := range p.Comments {
			if c.Text == "" {
				return nil, fmt.Errorf("seed post %d comment %d: text is required", i, j)
			}
		}
	}
	return &fx, nil
}

// Apply inserts every post of fx into store, each followed by its comments.
// It stops at the first store error; rows inserted before it stay.
func Apply(ctx context.Context, store repositories.Store, fx *Fixture) (Result, error) {
	var res Result
	for _, p := range fx.Posts {
		postID, err := store.Insert(ctx, &models.PostInput{Title: p.Title, Contents: p.Contents})
		if err != nil {
			return res, fmt.Errorf("insert post %q: %w", p.Title, err)
		}
		res.Posts++

		for _, c := range p.Comments {
			if _, err := store.InsertComment(ctx, &models.CommentInput{PostID: postID, Text: c.Text}); err != nil {
				return res, fmt.Errorf("insert comment on post %d: %w", postID, err)
			}
			res.Comments++
		}
	}
	return res, nil
}
