package services

import (
	"context"
	"log"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
)

// Page bounds a listing. A zero Limit returns every row.
type Page struct {
	Limit  int
	Offset int
}

// FeedService produces post listings as seen by a viewer: one query for posts, authors, like
// counts and the viewer's likes, then the viewer's bookmark set merged in by post id.
type FeedService struct {
	posts     repositories.PostRepository
	bookmarks repositories.BookmarkRepository
}

func NewFeedService(posts repositories.PostRepository, bookmarks repositories.BookmarkRepository) *FeedService {
	return &FeedService{posts: posts, bookmarks: bookmarks}
}

// Feed lists every post, newest first, optionally narrowed to one category. The category is
// either empty, the "All" sentinel or a known tag in any case.
func (s *FeedService) Feed(ctx context.Context, viewer models.Viewer, category string, page Page) ([]models.PostView, error) {
	tag, err := models.ParseCategoryFilter(category)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, viewer, models.PostFilter{Category: tag, Limit: page.Limit, Offset: page.Offset})
}

// Post returns a single post or repositories.ErrPostNotFound.
func (s *FeedService) Post(ctx context.Context, viewer models.Viewer, id string) (*models.PostView, error) {
	view, err := s.posts.GetPostView(ctx, id, viewer.UserID)
	if err != nil {
		return nil, err
	}
	views := []models.PostView{*view}
	s.annotate(ctx, viewer, views)
	return &views[0], nil
}

// AuthorPosts lists the posts written by authorID.
func (s *FeedService) AuthorPosts(ctx context.Context, viewer models.Viewer, authorID string) ([]models.PostView, error) {
	return s.list(ctx, viewer, models.PostFilter{AuthorID: authorID})
}

// Bookmarks lists the posts the viewer has bookmarked.
func (s *FeedService) Bookmarks(ctx context.Context, viewer models.Viewer) ([]models.PostView, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToContinue
	}
	return s.list(ctx, viewer, models.PostFilter{BookmarkedBy: viewer.UserID})
}

// LikedPosts lists the posts the viewer has liked.
func (s *FeedService) LikedPosts(ctx context.Context, viewer models.Viewer) ([]models.PostView, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToContinue
	}
	return s.list(ctx, viewer, models.PostFilter{LikedBy: viewer.UserID})
}

func (s *FeedService) list(ctx context.Context, viewer models.Viewer, filter models.PostFilter) ([]models.PostView, error) {
	filter.ViewerID = viewer.UserID
	views, err := s.posts.ListPostViews(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.annotate(ctx, viewer, views)
	return views, nil
}

// annotate sets ViewerHasBookmarked from the viewer's bookmark set. A failed bookmark read
// leaves every flag false.
func (s *FeedService) annotate(ctx context.Context, viewer models.Viewer, views []models.PostView) {
	if !viewer.Authenticated() || len(views) == 0 {
		return
	}
	bookmarked, err := s.bookmarks.GetBookmarkedPostIDs(ctx, viewer.UserID)
	if err != nil {
		log.Printf("Warning: could not load bookmarks for user %s: %v", viewer.UserID, err)
		return
	}
	for i := range views {
		views[i].ViewerHasBookmarked = bookmarked[views[i].ID]
	}
}
