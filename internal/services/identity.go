package services

import (
	"context"

	"gorm.io/gorm"
)

// ExternalIdentity is an identity asserted by a provider-issued token.
type ExternalIdentity struct {
	UserID string
	Email  string
	Name   string
}

// IdentityProvider owns credentials. Profiles and posts live in our database; the identity may
// not.
type IdentityProvider interface {
	// CreateIdentity registers the credentials and returns the new identity id.
	CreateIdentity(ctx context.Context, email, password string) (string, error)
	// Authenticate checks an email/password pair and returns the identity id.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// VerifyToken checks a provider-issued ID token.
	VerifyToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	DeleteIdentity(ctx context.Context, userID string) error
	// RevokeSessions invalidates any provider-side sessions of the user.
	RevokeSessions(ctx context.Context, userID string) error
	// WithTx returns a provider whose database writes go through tx. Providers that keep no
	// rows in our database return themselves.
	WithTx(tx *gorm.DB) IdentityProvider
}
