package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is a credential record owned by the local identity provider. When Firebase is the
// provider this table stays empty.
type Identity struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(128)"`
	Email        string    `json:"email" gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
