package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/anonto42/quillpost/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	posts        *repositories.PostgresPostRepository
	likes        *repositories.PostgresLikeRepository
	bookmarks    *repositories.PostgresBookmarkRepository
	comments     *repositories.PostgresCommentRepository
	feed         *FeedService
	interactions *InteractionService
	postService  *PostService
	sessions     *SessionService
	accounts     *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		posts:     repositories.NewPostgresPostRepository(db),
		likes:     repositories.NewPostgresLikeRepository(db),
		bookmarks: repositories.NewPostgresBookmarkRepository(db),
		comments:  repositories.NewPostgresCommentRepository(db),
	}
	f.feed = NewFeedService(f.posts, f.bookmarks)
	f.interactions = NewInteractionService(f.posts, f.likes, f.bookmarks, f.comments, f.feed)
	f.postService = NewPostService(f.posts, f.feed)
	f.sessions = NewSessionService("test-secret", time.Hour, time.Minute, repositories.NewMemorySessionRepository(),
		repositories.NewPostgresProfileRepository(db))
	identity := NewLocalIdentityProvider(repositories.NewPostgresIdentityRepository(db), bcrypt.MinCost)
	f.accounts = NewAccountService(db, identity, f.sessions)
	return f
}

// user creates a profile and returns it as an authenticated viewer.
func (f *fixture) user(t *testing.T, id string) models.Viewer {
	t.Helper()
	testutil.CreateProfile(t, f.db, id, id)
	return models.Viewer{UserID: id}
}

// post creates a post whose creation time is offset minutes after a fixed base.
func (f *fixture) post(t *testing.T, authorID, title, category string, offset int) *models.Post {
	t.Helper()
	p := &models.Post{
		AuthorID:  authorID,
		Title:     title,
		Content:   title + " body",
		Category:  category,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute),
	}
	require.NoError(t, f.db.Omit("Author").Create(p).Error)
	return p
}

func viewerFor(id string) models.Viewer {
	return models.Viewer{UserID: id, TokenID: "token-" + id}
}

func ids(views []models.PostView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func byID(views []models.PostView, id string) *models.PostView {
	for i := range views {
		if views[i].ID == id {
			return &views[i]
		}
	}
	return nil
}

// failingBookmarks is a BookmarkRepository whose bookmark-set read always fails.
type failingBookmarks struct {
	repositories.BookmarkRepository
}

func (failingBookmarks) GetBookmarkedPostIDs(context.Context, string) (map[string]bool, error) {
	return nil, context.DeadlineExceeded
}
