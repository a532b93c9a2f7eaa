package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/quillpost/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID string) error
}

// PostgresLikeRepository implements LikeRepository on top of GORM.
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the like unless the (post, user) pair already exists, in which case it
// is a no-op. A missing post surfaces as ErrPostNotFound and a missing profile as
// ErrProfileNotFound.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return missingParent(ctx, r.db, like.PostID)
	}
	return err
}

// DeleteLike removes the like if present. Deleting a missing like is not an error.
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}
