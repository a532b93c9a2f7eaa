package repositories

import (
	"github.com/anonto42/quillpost/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema, parents before children so the
// cascade constraints resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Identity{},
		&models.Profile{},
		&models.Post{},
		&models.Like{},
		&models.Bookmark{},
		&models.Comment{},
	)
}
