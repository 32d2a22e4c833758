// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostRefs is the list of post IDs owned by a user, stored as a JSON array
// column. It is the back-reference side of post creation: every post a user
// authors gets its ID appended here.
type PostRefs []uint

// User represents an account in the Inkwell application.
type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Username string   `gorm:"unique;not null" json:"username"`
	Email    string   `gorm:"unique;not null" json:"email"`
	Password string   `gorm:"not null" json:"-"`
	PostIDs  PostRefs `gorm:"type:jsonb;serializer:json" json:"post_ids"`
	// PostCount is not persisted; always derived from PostIDs.
	PostCount int            `gorm:"-" json:"post_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	// Posts is hydrated from the content store by author username; it is
	// not a foreign-key association.
	Posts []Post `gorm:"-" json:"posts,omitempty"`
}

// AfterFind normalizes the JSON-backed fields and derives the post count.
func (u *User) AfterFind(_ *gorm.DB) error {
	if u.PostIDs == nil {
		u.PostIDs = PostRefs{}
	}
	u.PostCount = len(u.PostIDs)
	return nil
}

// HasPostRef reports whether the given post ID is in the user's owned list.
func (u *User) HasPostRef(postID uint) bool {
	for _, id := range u.PostIDs {
		if id == postID {
			return true
		}
	}
	return false
}
