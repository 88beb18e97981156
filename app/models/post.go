package models

import (
	"encoding/json"
	"io"
	"time"
)

// DecodePostInput reads a JSON request body into a PostInput. Only JSON
// strings are accepted for title and contents; anything else, including a
// body that is not a JSON object, leaves the field empty so Validate
// rejects it.
func DecodePostInput(r io.Reader) *PostInput {
	in := &PostInput{}
	if r == nil {
		return in
	}

	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return in
	}
	in.Title, _ = raw["title"].(string)
	in.Contents, _ = raw["contents"].(string)
	return in
}

// Validate checks that title and contents are both present
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// BeforeCreate stamps the creation and update times
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// Apply copies the writable fields from in and bumps UpdatedAt.
func (p *Post) Apply(in *PostInput) {
	p.Title = in.Title
	p.Contents = in.Contents
	p.UpdatedAt = time.Now().UTC()
}

// Clone returns a copy of the post.
func (p *Post) Clone() *Post {
	cp := *p
	return &cp
}
