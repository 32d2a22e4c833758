// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with demo users, posts and embedded comments.
// Every created post gets its ID appended to the author's reference list, the
// same two-write shape the API performs.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 50
	}
	if opts.MaxComments <= 0 {
		opts.MaxComments = 5
	}

	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d demo users created", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		post := f.BuildPost(author)

		numComments := f.rng.Intn(opts.MaxComments + 1)
		for j := 0; j < numComments; j++ {
			commenter := users[f.rng.Intn(len(users))]
			post.Comments = append(post.Comments, f.BuildComment(commenter, post.CreatedAt))
		}
		posts = append(posts, post)
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d demo posts created", len(posts))

	if !opts.DryRun {
		if err := backfillPostRefs(db, users, posts); err != nil {
			return fmt.Errorf("failed to backfill post references: %w", err)
		}
	}

	log.Println("🌱 Seeding complete")
	return nil
}

// backfillPostRefs writes each author's owned post IDs, mirroring the
// second write of the API's create-post flow.
func backfillPostRefs(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	refs := make(map[string]models.PostRefs, len(users))
	for _, p := range posts {
		refs[p.AuthorUsername] = append(refs[p.AuthorUsername], p.ID)
	}

	for _, u := range users {
		owned := refs[u.Username]
		if owned == nil {
			owned = models.PostRefs{}
		}
		if err := db.Model(&models.User{}).
			Where("id = ?", u.ID).
			Update("post_ids", owned).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	// Order matters only for readability here; there are no FK constraints
	// between posts and users.
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Post{}).Error; err != nil {
		return err
	}
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.User{}).Error
}
