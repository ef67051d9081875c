package repository

import (
	"context"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestAnonymousPostReadsUseCache(t *testing.T) {
	mr := setupTestCache(t)
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	post := &models.Post{UserID: alice.ID, Text: "hello"}
	require.NoError(t, postRepo.Create(ctx, post))

	got, err := postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentsCount)
	assert.True(t, mr.Exists(cache.PostKey(post.ID)))

	// A write that bypasses the repository never reaches the cached copy.
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: alice.ID, Text: "raw"}).Error)
	stale, err := postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, stale.CommentsCount)

	// A repository write invalidates, so the next anonymous read is fresh.
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{PostID: post.ID, UserID: alice.ID, Text: "again"}))
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))

	fresh, err := postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.CommentsCount)
}

func TestToggleLikeInvalidatesCachedPost(t *testing.T) {
	mr := setupTestCache(t)
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := &models.Post{UserID: alice.ID, Text: "hello"}
	require.NoError(t, postRepo.Create(ctx, post))

	warmed, err := postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, warmed.LikesCount)

	liked, likes, err := postRepo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, likes)
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))

	fresh, err := postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.LikesCount)
	assert.False(t, fresh.Liked)

	// Authenticated reads skip the cache and carry the viewer's like state.
	viewerRead, err := postRepo.GetByID(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, viewerRead.Liked)
}
