package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/quillpost/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.CommentView, error)
}

// PostgresCommentRepository implements CommentRepository on top of GORM.
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return missingParent(ctx, r.db, comment.PostID)
	}
	return err
}

// GetCommentsByPostID lists a post's comments with their authors, newest first.
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.CommentView, error) {
	comments := []models.CommentView{}
	err := r.db.WithContext(ctx).Table("comments").
		Select(`comments.id, comments.post_id, comments.content, comments.created_at,
	profiles.username AS user_username, profiles.full_name AS user_full_name,
	profiles.avatar_url AS user_avatar_url`).
		Joins("JOIN profiles ON profiles.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Order("comments.id").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
