package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/quillpost/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, postID, userID string) error
	GetBookmarkedPostIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// CreateBookmark is insert-or-ignore on the (post, user) pair.
func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(bookmark).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return missingParent(ctx, r.db, bookmark.PostID)
	}
	return err
}

func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Bookmark{}).Error
}

// GetBookmarkedPostIDs returns the viewer's whole bookmark set keyed by post id.
func (r *PostgresBookmarkRepository) GetBookmarkedPostIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var postIDs []string
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		result[id] = true
	}
	return result, nil
}
