package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/quillpost/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already registered")
	ErrAuthCodeNotFound = errors.New("auth code not found or expired")
)

// missingParent names the row a foreign key violation on a post-scoped insert points at. The
// insert has two parents, the post and the acting user's profile; the post is checked and the
// profile is blamed when the post still exists.
func missingParent(ctx context.Context, db *gorm.DB, postID string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}
	return ErrProfileNotFound
}
