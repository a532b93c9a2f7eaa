package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/quillpost/internal/repositories"
	"gorm.io/gorm"
)

// FirebaseAuthClient is the part of *auth.Client the provider uses.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseIdentityProvider keeps identities in Firebase Auth. Password sign-in happens in the
// client SDK, which then calls firebase-login with its ID token.
type FirebaseIdentityProvider struct {
	client FirebaseAuthClient
}

func NewFirebaseIdentityProvider(client FirebaseAuthClient) *FirebaseIdentityProvider {
	return &FirebaseIdentityProvider{client: client}
}

func (p *FirebaseIdentityProvider) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	user, err := p.client.CreateUser(ctx, (&auth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", repositories.ErrEmailTaken
		}
		return "", fmt.Errorf("firebase create user: %w", err)
	}
	return user.UID, nil
}

func (p *FirebaseIdentityProvider) Authenticate(context.Context, string, string) (string, error) {
	return "", ErrUnsupportedProvider
}

func (p *FirebaseIdentityProvider) VerifyToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidSession
	}
	identity := &ExternalIdentity{UserID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}

func (p *FirebaseIdentityProvider) UpdatePassword(ctx context.Context, userID, password string) error {
	if _, err := p.client.UpdateUser(ctx, userID, (&auth.UserToUpdate{}).Password(password)); err != nil {
		if auth.IsUserNotFound(err) {
			return repositories.ErrIdentityNotFound
		}
		return fmt.Errorf("firebase update user: %w", err)
	}
	return nil
}

func (p *FirebaseIdentityProvider) DeleteIdentity(ctx context.Context, userID string) error {
	if err := p.client.DeleteUser(ctx, userID); err != nil {
		if auth.IsUserNotFound(err) {
			return repositories.ErrIdentityNotFound
		}
		return fmt.Errorf("firebase delete user: %w", err)
	}
	return nil
}

func (p *FirebaseIdentityProvider) RevokeSessions(ctx context.Context, userID string) error {
	if err := p.client.RevokeRefreshTokens(ctx, userID); err != nil && !auth.IsUserNotFound(err) {
		return fmt.Errorf("firebase revoke tokens: %w", err)
	}
	return nil
}

func (p *FirebaseIdentityProvider) WithTx(*gorm.DB) IdentityProvider {
	return p
}
