package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/quillpost/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	DeletePostsByAuthor(ctx context.Context, authorID string) (int64, error)
	ListPostViews(ctx context.Context, filter models.PostFilter) ([]models.PostView, error)
	GetPostView(ctx context.Context, id, viewerID string) (*models.PostView, error)
}

// PostgresPostRepository implements PostRepository on top of GORM.
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

const postViewColumns = `posts.id, posts.title, posts.content, posts.category, posts.cover_image,
	posts.author_id, posts.created_at, posts.updated_at,
	profiles.username AS author_username, profiles.full_name AS author_full_name,
	profiles.avatar_url AS author_avatar_url,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count`

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrProfileNotFound
	}
	return err
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost writes the editable columns of post.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":       post.Title,
		"content":     post.Content,
		"category":    post.Category,
		"cover_image": post.CoverImage,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post; its likes, bookmarks and comments go with it through the
// ON DELETE CASCADE constraints.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostgresPostRepository) DeletePostsByAuthor(ctx context.Context, authorID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Post{})
	return res.RowsAffected, res.Error
}

// ListPostViews runs the feed query: posts with their author's display fields, the like
// count and whether filter.ViewerID liked each post, newest first. Bookmark flags are left
// false.
func (r *PostgresPostRepository) ListPostViews(ctx context.Context, filter models.PostFilter) ([]models.PostView, error) {
	views := []models.PostView{}
	if err := r.viewQuery(ctx, filter).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return views, nil
}

func (r *PostgresPostRepository) GetPostView(ctx context.Context, id, viewerID string) (*models.PostView, error) {
	views, err := r.ListPostViews(ctx, models.PostFilter{ID: id, ViewerID: viewerID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrPostNotFound
	}
	return &views[0], nil
}

func (r *PostgresPostRepository) viewQuery(ctx context.Context, filter models.PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Table("posts")
	if filter.ViewerID != "" {
		q = q.Select(postViewColumns+`,
	EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS viewer_has_liked`, filter.ViewerID)
	} else {
		q = q.Select(postViewColumns + `, FALSE AS viewer_has_liked`)
	}
	q = q.Joins("JOIN profiles ON profiles.id = posts.author_id")

	if filter.BookmarkedBy != "" {
		q = q.Joins("JOIN bookmarks ON bookmarks.post_id = posts.id AND bookmarks.user_id = ?", filter.BookmarkedBy)
	}
	if filter.LikedBy != "" {
		q = q.Joins("JOIN likes AS liked ON liked.post_id = posts.id AND liked.user_id = ?", filter.LikedBy)
	}
	if filter.ID != "" {
		q = q.Where("posts.id = ?", filter.ID)
	}
	if filter.Category != "" {
		q = q.Where("LOWER(posts.category) = LOWER(?)", filter.Category)
	}
	if filter.AuthorID != "" {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}

	q = q.Order("posts.created_at DESC").Order("posts.id")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	return q
}
