package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory SQLite database with the application schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return db
}

func testUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$fakehashfakehashfakehashfakehash",
		PostIDs:  models.PostRefs{},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func testPost(t *testing.T, db *gorm.DB, author, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:          title,
		Content:        "some content",
		AuthorUsername: author,
		Comments:       models.Comments{},
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
