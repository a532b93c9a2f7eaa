package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LocalIdentityProvider keeps bcrypt-hashed credentials in the identities table.
type LocalIdentityProvider struct {
	identities repositories.IdentityRepository
	cost       int
}

// NewLocalIdentityProvider creates a provider hashing with cost; zero means bcrypt.DefaultCost.
func NewLocalIdentityProvider(identities repositories.IdentityRepository, cost int) *LocalIdentityProvider {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &LocalIdentityProvider{identities: identities, cost: cost}
}

func (p *LocalIdentityProvider) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	identity := &models.Identity{Email: strings.ToLower(strings.TrimSpace(email)), PasswordHash: string(hash)}
	if err := p.identities.CreateIdentity(ctx, identity); err != nil {
		return "", err
	}
	return identity.ID, nil
}

func (p *LocalIdentityProvider) Authenticate(ctx context.Context, email, password string) (string, error) {
	identity, err := p.identities.GetIdentityByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrIdentityNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return identity.ID, nil
}

func (p *LocalIdentityProvider) VerifyToken(context.Context, string) (*ExternalIdentity, error) {
	return nil, ErrUnsupportedProvider
}

func (p *LocalIdentityProvider) UpdatePassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return err
	}
	return p.identities.UpdatePasswordHash(ctx, userID, string(hash))
}

func (p *LocalIdentityProvider) DeleteIdentity(ctx context.Context, userID string) error {
	return p.identities.DeleteIdentity(ctx, userID)
}

// RevokeSessions is a no-op: local sessions are the server's own tokens.
func (p *LocalIdentityProvider) RevokeSessions(context.Context, string) error {
	return nil
}

func (p *LocalIdentityProvider) WithTx(tx *gorm.DB) IdentityProvider {
	return &LocalIdentityProvider{identities: repositories.NewPostgresIdentityRepository(tx), cost: p.cost}
}
