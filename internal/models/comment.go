package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is append-only: there is no edit or delete path.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;index"`
	UserID    string    `json:"user_id" gorm:"type:varchar(128);not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      Profile   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CommentView is a comment with its author's display fields.
type CommentView struct {
	ID        string        `json:"id"`
	PostID    string        `json:"post_id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	User      AuthorSummary `json:"user" gorm:"embedded;embeddedPrefix:user_"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"max=2000"`
}
