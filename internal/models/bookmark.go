package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark has the same shape and rules as Like with an independent meaning.
type Bookmark struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmarks_post_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(128);not null;uniqueIndex:idx_bookmarks_post_user;index"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      Profile   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type ToggleBookmarkRequest struct {
	Bookmarked bool `json:"bookmarked"`
}
