package services

import (
	"context"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
)

// PostService backs the write form. Only a post's author may edit or delete it.
type PostService struct {
	posts repositories.PostRepository
	feed  *FeedService
}

func NewPostService(posts repositories.PostRepository, feed *FeedService) *PostService {
	return &PostService{posts: posts, feed: feed}
}

func (s *PostService) Create(ctx context.Context, viewer models.Viewer, req models.CreatePostRequest) (*models.PostView, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToContinue
	}
	category, err := models.NormalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		Category:   category,
		CoverImage: req.CoverImage,
		AuthorID:   viewer.UserID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.feed.Post(ctx, viewer, post.ID)
}

func (s *PostService) Update(ctx context.Context, viewer models.Viewer, id string, req models.UpdatePostRequest) (*models.PostView, error) {
	post, err := s.ownedPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Category != "" {
		if post.Category, err = models.NormalizeCategory(req.Category); err != nil {
			return nil, err
		}
	}
	if req.CoverImage != nil {
		post.CoverImage = req.CoverImage
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.feed.Post(ctx, viewer, id)
}

// Delete removes the post along with its likes, bookmarks and comments.
func (s *PostService) Delete(ctx context.Context, viewer models.Viewer, id string) error {
	if _, err := s.ownedPost(ctx, viewer, id); err != nil {
		return err
	}
	return s.posts.DeletePost(ctx, id)
}

func (s *PostService) ownedPost(ctx context.Context, viewer models.Viewer, id string) (*models.Post, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToContinue
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewer.UserID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}
