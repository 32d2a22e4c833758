package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mockGorm wraps a sqlmock connection in a gorm DB using the postgres
// dialect, so error mapping is exercised against the driver we ship with.
func mockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_CreateMapsPostgresUniqueViolation(t *testing.T) {
	db, mock := mockGorm(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO \"users\"").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), &models.User{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "hash",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateMapsOtherErrorsInternal(t *testing.T) {
	db, mock := mockGorm(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO \"users\"").
		WillReturnError(errors.New("ERROR: connection reset by peer"))

	err := repo.Create(context.Background(), &models.User{
		Username: "unlucky",
		Email:    "unlucky@example.com",
		Password: "hash",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.False(t, isUniqueConstraintError(errors.New("timeout")))
	assert.True(t, isUniqueConstraintError(errors.New("SQLSTATE 23505")))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, isUniqueConstraintError(errors.New("duplicate key value")))
}
