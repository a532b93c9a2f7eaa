package services

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionService issues and checks the server's own session tokens. Tokens are HS256 JWTs
// whose jti can be revoked before expiry. Deleting an account revokes every token of the user
// at once through a user-wide entry in the same revocation store.
type SessionService struct {
	secret   []byte
	ttl      time.Duration
	codeTTL  time.Duration
	store    repositories.SessionRepository
	profiles repositories.ProfileRepository
	now      func() time.Time
}

func NewSessionService(secret string, ttl, codeTTL time.Duration, store repositories.SessionRepository, profiles repositories.ProfileRepository) *SessionService {
	return &SessionService{
		secret:   []byte(secret),
		ttl:      ttl,
		codeTTL:  codeTTL,
		store:    store,
		profiles: profiles,
		now:      time.Now,
	}
}

// userRevocationID is the revocation key that covers every token of a user.
func userRevocationID(userID string) string {
	return "user:" + userID
}

// IssueToken signs a new session token for the user.
func (s *SessionService) IssueToken(userID, email string) (*models.Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &models.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

// Verify parses a token and returns its viewer. Expired, malformed and revoked tokens all
// yield ErrInvalidSession.
func (s *SessionService) Verify(ctx context.Context, tokenString string) (models.Viewer, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" || claims.ID == "" {
		return models.Anonymous(), ErrInvalidSession
	}

	for _, id := range []string{claims.ID, userRevocationID(claims.UserID)} {
		revoked, err := s.store.IsSessionRevoked(ctx, id)
		if err != nil {
			return models.Anonymous(), err
		}
		if revoked {
			return models.Anonymous(), ErrInvalidSession
		}
	}

	viewer := models.Viewer{UserID: claims.UserID, Email: claims.Email, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		viewer.ExpiresAt = claims.ExpiresAt.Time
	}
	return viewer, nil
}

// Revoke signs the viewer's current token out.
func (s *SessionService) Revoke(ctx context.Context, viewer models.Viewer) error {
	if viewer.TokenID == "" {
		return nil
	}
	expiresAt := viewer.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.ttl)
	}
	return s.store.RevokeSession(ctx, &models.RevokedSession{
		TokenID:   viewer.TokenID,
		UserID:    viewer.UserID,
		ExpiresAt: expiresAt,
		RevokedAt: s.now(),
	})
}

// RevokeUser signs out every session of the user and drops the codes it has not exchanged
// yet. The user-wide entry lives for one session TTL, which outlasts any token issued before
// it.
func (s *SessionService) RevokeUser(ctx context.Context, userID string) error {
	if err := s.store.DeleteAuthCodesByUser(ctx, userID); err != nil {
		return err
	}
	now := s.now()
	return s.store.RevokeSession(ctx, &models.RevokedSession{
		TokenID:   userRevocationID(userID),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		RevokedAt: now,
	})
}

// IssueAuthCode mints a short-lived one-time code for the viewer, to be passed through a
// redirect and exchanged at the callback.
func (s *SessionService) IssueAuthCode(ctx context.Context, viewer models.Viewer) (*models.AuthCode, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToContinue
	}
	now := s.now()
	code := &models.AuthCode{
		Code:      uuid.NewString(),
		UserID:    viewer.UserID,
		Email:     viewer.Email,
		ExpiresAt: now.Add(s.codeTTL),
		CreatedAt: now,
	}
	if err := s.store.CreateAuthCode(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// ExchangeCode consumes a code and returns a fresh session. A code works once, and only while
// the account it was minted for still has a profile.
func (s *SessionService) ExchangeCode(ctx context.Context, code string) (*models.Session, error) {
	authCode, err := s.store.ConsumeAuthCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrAuthCodeNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if _, err := s.profiles.GetProfileByID(ctx, authCode.UserID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return s.IssueToken(authCode.UserID, authCode.Email)
}
