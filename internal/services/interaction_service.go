package services

import (
	"context"
	"strings"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
)

// InteractionService performs likes, bookmarks and comments. Each mutation issues a single
// write and then re-reads what it affected.
type InteractionService struct {
	posts     repositories.PostRepository
	likes     repositories.LikeRepository
	bookmarks repositories.BookmarkRepository
	comments  repositories.CommentRepository
	feed      *FeedService
}

func NewInteractionService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	bookmarks repositories.BookmarkRepository,
	comments repositories.CommentRepository,
	feed *FeedService,
) *InteractionService {
	return &InteractionService{posts: posts, likes: likes, bookmarks: bookmarks, comments: comments, feed: feed}
}

// ToggleLike flips the like state the client currently shows: a delete when currentlyLiked,
// otherwise an insert. It returns the refreshed post.
func (s *InteractionService) ToggleLike(ctx context.Context, viewer models.Viewer, postID string, currentlyLiked bool) (*models.PostView, error) {
	return s.SetLike(ctx, viewer, postID, !currentlyLiked)
}

// SetLike makes the viewer's like on postID match liked.
func (s *InteractionService) SetLike(ctx context.Context, viewer models.Viewer, postID string, liked bool) (*models.PostView, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToLike
	}
	var err error
	if liked {
		err = s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: viewer.UserID})
	} else {
		err = s.likes.DeleteLike(ctx, postID, viewer.UserID)
	}
	if err != nil {
		return nil, err
	}
	return s.feed.Post(ctx, viewer, postID)
}

// ToggleBookmark flips the bookmark state the client currently shows.
func (s *InteractionService) ToggleBookmark(ctx context.Context, viewer models.Viewer, postID string, currentlyBookmarked bool) (*models.PostView, error) {
	return s.SetBookmark(ctx, viewer, postID, !currentlyBookmarked)
}

// SetBookmark makes the viewer's bookmark on postID match bookmarked.
func (s *InteractionService) SetBookmark(ctx context.Context, viewer models.Viewer, postID string, bookmarked bool) (*models.PostView, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToBookmark
	}
	var err error
	if bookmarked {
		err = s.bookmarks.CreateBookmark(ctx, &models.Bookmark{PostID: postID, UserID: viewer.UserID})
	} else {
		err = s.bookmarks.DeleteBookmark(ctx, postID, viewer.UserID)
	}
	if err != nil {
		return nil, err
	}
	return s.feed.Post(ctx, viewer, postID)
}

// AddComment appends a comment and returns the post's refreshed comment list.
func (s *InteractionService) AddComment(ctx context.Context, viewer models.Viewer, postID, content string) ([]models.CommentView, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToComment
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	comment := &models.Comment{PostID: postID, UserID: viewer.UserID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByPostID(ctx, postID)
}

// Comments lists a post's comments, newest first.
func (s *InteractionService) Comments(ctx context.Context, postID string) ([]models.CommentView, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByPostID(ctx, postID)
}
