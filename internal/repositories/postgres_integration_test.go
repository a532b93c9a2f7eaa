//go:build integration
// +build integration

package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/anonto42/quillpost/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("quillpost"),
		postgres.WithUsername("quillpost"),
		postgres.WithPassword("quillpost"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), config.GormConfig("silent"))
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

func TestPostgres_ConcurrentLikesKeepOneRow(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	profiles := repositories.NewPostgresProfileRepository(db)
	posts := repositories.NewPostgresPostRepository(db)
	likes := repositories.NewPostgresLikeRepository(db)

	require.NoError(t, profiles.CreateProfile(ctx, &models.Profile{ID: "u1", Username: "alice"}))
	post := &models.Post{AuthorID: "u1", Title: "t", Content: "c", Category: "art"}
	require.NoError(t, posts.CreatePost(ctx, post))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, likes.CreateLike(ctx, &models.Like{PostID: post.ID, UserID: "u1"}))
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err := likes.CreateLike(ctx, &models.Like{PostID: "00000000-0000-0000-0000-000000000000", UserID: "u1"})
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
	err = likes.CreateLike(ctx, &models.Like{PostID: post.ID, UserID: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrProfileNotFound)
}

func TestPostgres_FeedQueryAndCascade(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	profiles := repositories.NewPostgresProfileRepository(db)
	posts := repositories.NewPostgresPostRepository(db)
	bookmarks := repositories.NewPostgresBookmarkRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)

	require.NoError(t, profiles.CreateProfile(ctx, &models.Profile{ID: "u1", Username: "alice"}))
	require.NoError(t, profiles.CreateProfile(ctx, &models.Profile{ID: "u2", Username: "bob"}))
	post := &models.Post{AuthorID: "u1", Title: "t", Content: "c", Category: "technology"}
	require.NoError(t, posts.CreatePost(ctx, post))
	require.NoError(t, bookmarks.CreateBookmark(ctx, &models.Bookmark{PostID: post.ID, UserID: "u2"}))
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{PostID: post.ID, UserID: "u2", Content: "hi"}))

	views, err := posts.ListPostViews(ctx, models.PostFilter{Category: "TECHNOLOGY", ViewerID: "u2"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].Author.Username)

	views, err = posts.ListPostViews(ctx, models.PostFilter{BookmarkedBy: "u2"})
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NoError(t, posts.DeletePost(ctx, post.ID))
	set, err := bookmarks.GetBookmarkedPostIDs(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, set)
	list, err := comments.GetCommentsByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
