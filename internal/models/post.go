// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a single comment embedded inside its post. Comments are not
// rows of their own: the whole list lives in one JSON column on the post, so
// an append is atomic per post and insertion order is preserved.
type Comment struct {
	AuthorUsername string    `json:"username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// Comments is the embedded comment list of a post.
type Comments []Comment

// Post represents a blog post in the Inkwell application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	// AuthorUsername is denormalized from the authenticated identity at
	// creation time. It is never taken from client input.
	AuthorUsername string   `gorm:"index;not null" json:"username"`
	Comments       Comments `gorm:"type:jsonb;serializer:json" json:"comments"`
	// CommentCount is not persisted; always derived from Comments.
	CommentCount int            `gorm:"-" json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// AfterFind normalizes the embedded comment list and derives the count.
func (p *Post) AfterFind(_ *gorm.DB) error {
	if p.Comments == nil {
		p.Comments = Comments{}
	}
	p.CommentCount = len(p.Comments)
	return nil
}
