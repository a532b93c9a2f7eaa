package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a user-authored article stored in the posts table.
type Post struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string    `json:"title" gorm:"size:200;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Category   string    `json:"category" gorm:"size:32;not null;index"`
	CoverImage *string   `json:"cover_image"`
	AuthorID   string    `json:"author_id" gorm:"type:varchar(128);not null;index"`
	Author     Profile   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostView is a post as rendered to a viewer: author display fields, the like aggregate and
// the two viewer-relative flags. It is a read model and is never written.
type PostView struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Content             string        `json:"content"`
	Category            string        `json:"category"`
	CoverImage          *string       `json:"cover_image"`
	AuthorID            string        `json:"author_id"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	Author              AuthorSummary `json:"author" gorm:"embedded;embeddedPrefix:author_"`
	LikeCount           int64         `json:"likes"`
	ViewerHasLiked      bool          `json:"user_has_liked"`
	ViewerHasBookmarked bool          `json:"user_has_bookmarked" gorm:"-"`
}

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	ID           string
	Category     string
	AuthorID     string
	BookmarkedBy string
	LikedBy      string
	ViewerID     string
	Limit        int
	Offset       int
}

// CreatePostRequest is the write form.
type CreatePostRequest struct {
	Title      string  `json:"title" validate:"required,min=1,max=200"`
	Category   string  `json:"category" validate:"required,category"`
	Content    string  `json:"content" validate:"required,min=1"`
	CoverImage *string `json:"cover_image,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest is the edit form; empty fields keep their current value.
type UpdatePostRequest struct {
	Title      string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Category   string  `json:"category,omitempty" validate:"omitempty,category"`
	Content    string  `json:"content,omitempty" validate:"omitempty,min=1"`
	CoverImage *string `json:"cover_image,omitempty" validate:"omitempty,url"`
}
