package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCache points the package cache at a miniredis instance for the test.
func withCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	old := cache.GetClient()
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(old) })
	return mr
}

func TestUserRepository_GetByIDServedFromCache(t *testing.T) {
	withCache(t)
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := testUser(t, db, "cachedink")
	require.NoError(t, db.Model(created).Update("post_ids", models.PostRefs{4, 9}).Error)

	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cachedink", first.Username)
	assert.Equal(t, models.PostRefs{4, 9}, first.PostIDs)
	assert.Equal(t, 2, first.PostCount)

	// Change the row behind the cache's back; a hit must serve the cached copy.
	require.NoError(t, db.Model(created).Update("email", "changed@example.com").Error)

	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, second.Email, "expected the cached read, not the updated row")
	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, first.PostIDs, second.PostIDs)
	assert.Equal(t, first.PostCount, second.PostCount)
}

// The cached user is the API serialization: the password hash does not
// survive the round-trip. Credential checks must use the uncached read,
// which keeps the stored hash even while the user sits in the cache.
func TestUserRepository_CachedUserHasNoHash(t *testing.T) {
	withCache(t)
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := testUser(t, db, "hashkeeper")

	// Populate the cache, then read again to get the cached copy.
	_, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, cached.Password)

	fresh, err := repo.GetByIDUncached(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Password, fresh.Password)
}

func TestUserRepository_UpdateInvalidatesCache(t *testing.T) {
	withCache(t)
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := testUser(t, db, "refresher")
	_, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	created.Email = "refresher2@example.com"
	require.NoError(t, repo.Update(ctx, created, false))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "refresher2@example.com", got.Email)
}

func TestPostRepository_GetByIDServedFromCache(t *testing.T) {
	withCache(t)
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	created := testPost(t, db, "cachedink", "hot read", time.Now())
	for _, body := range []string{"first", "second"} {
		_, err := repo.AppendComment(ctx, created.ID, models.Comment{
			AuthorUsername: "cachedink",
			Body:           body,
			CreatedAt:      time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, first.Comments, 2)

	// Change the row behind the cache's back; a hit must serve the cached copy.
	require.NoError(t, db.Model(created).Update("title", "rewritten").Error)

	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hot read", second.Title, "expected the cached read, not the updated row")
	assert.Equal(t, first.Content, second.Content)
	require.Len(t, second.Comments, 2)
	assert.Equal(t, "first", second.Comments[0].Body)
	assert.Equal(t, 2, second.CommentCount, "count must be re-derived on cache hits")
}
