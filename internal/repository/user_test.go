package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateIsConflict(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "inky", Email: "inky@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	dupUsername := &models.User{Username: "inky", Email: "other@example.com", Password: "hash"}
	err := repo.Create(ctx, dupUsername)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	dupEmail := &models.User{Username: "other", Email: "inky@example.com", Password: "hash"}
	err = repo.Create(ctx, dupEmail)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_GetByEmailMissingIsNilNil(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByIDDerivesPostCount(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testUser(t, db, "writer")
	require.NoError(t, repo.AppendPostRef(ctx, u.ID, 11))
	require.NoError(t, repo.AppendPostRef(ctx, u.ID, 12))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostRefs{11, 12}, got.PostIDs)
	assert.Equal(t, 2, got.PostCount)
}

func TestUserRepository_UpdateRejectsUsernameChange(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testUser(t, db, "original")
	u.Username = "renamed"

	err := repo.Update(ctx, u, false)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// Stored row untouched.
	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Username)
}

func TestUserRepository_UpdatePreservesHashWithoutFlag(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testUser(t, db, "stable")
	originalHash := u.Password

	// Even if a caller accidentally mutates Password, the stored hash only
	// moves when the passwordChanged flag is set.
	u.Password = "accidental-overwrite"
	require.NoError(t, repo.Update(ctx, u, false))

	stored, err := repo.GetByEmail(ctx, "stable@example.com")
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.Password)

	u.Password = "$2a$10$newhashnewhashnewhashnewhashne"
	require.NoError(t, repo.Update(ctx, u, true))

	stored, err = repo.GetByEmail(ctx, "stable@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newhashnewhashnewhashnewhashne", stored.Password)
}

func TestUserRepository_PostRefs(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testUser(t, db, "reflist")

	require.NoError(t, repo.AppendPostRef(ctx, u.ID, 5))
	require.NoError(t, repo.AppendPostRef(ctx, u.ID, 6))
	// Appending the same ID twice is a no-op.
	require.NoError(t, repo.AppendPostRef(ctx, u.ID, 5))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostRefs{5, 6}, got.PostIDs)

	require.NoError(t, repo.RemovePostRef(ctx, u.ID, 5))
	// Removing an absent ID is a no-op.
	require.NoError(t, repo.RemovePostRef(ctx, u.ID, 99))

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostRefs{6}, got.PostIDs)
	assert.Equal(t, 1, got.PostCount)
}

func TestUserRepository_PostRefsUnknownUser(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	err := repo.AppendPostRef(context.Background(), 404, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
