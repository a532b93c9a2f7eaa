package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Profile is the public-facing record of an identity. Its ID is the identity ID.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(128)"`
	Username  string    `json:"username" gorm:"size:50;not null;uniqueIndex"`
	FullName  string    `json:"full_name" gorm:"size:100"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorSummary is the slice of a profile embedded in post and comment listings.
type AuthorSummary struct {
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanumunicode"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken  string `json:"idToken" validate:"required"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50,alphanumunicode"`
}

type UpdateProfileRequest struct {
	Username  string  `json:"username,omitempty" validate:"omitempty,min=3,max=50,alphanumunicode"`
	FullName  string  `json:"full_name,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// ChangePasswordRequest carries the new password twice; the pair must match before any
// backend call is made.
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// JwtCustomClaims are the session token claims. RegisteredClaims.ID carries the token id used
// for revocation.
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
