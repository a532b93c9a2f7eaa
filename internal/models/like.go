package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is the (post, user) relation. Existence is the fact; the pair is unique.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(128);not null;uniqueIndex:idx_likes_post_user;index"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      Profile   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ToggleLikeRequest carries the flag the client currently shows.
type ToggleLikeRequest struct {
	Liked bool `json:"liked"`
}
