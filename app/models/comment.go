package models

import (
	"time"
)

// Validate checks if the comment input meets all validation requirements
func (in *CommentInput) Validate() error {
	return validate.Struct(in)
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
}

// Clone returns a copy of the comment.
func (c *Comment) Clone() *Comment {
	cp := *c
	return &cp
}
