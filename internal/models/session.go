package models

import "time"

// RevokedSession marks a session token id as signed out until the token would have expired.
type RevokedSession struct {
	TokenID   string    `json:"token_id" bson:"token_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	RevokedAt time.Time `json:"revoked_at" bson:"revoked_at"`
}

// AuthCode is a one-time code handed out through a redirect and exchanged for a session.
type AuthCode struct {
	Code      string    `json:"code" bson:"code"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Email     string    `json:"email" bson:"email"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Session is what the API hands back after sign-in or code exchange.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
