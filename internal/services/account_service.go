package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"gorm.io/gorm"
)

// AccountService runs the account lifecycle: sign-up, sign-in, profile settings and deletion.
type AccountService struct {
	db       *gorm.DB
	profiles repositories.ProfileRepository
	identity IdentityProvider
	sessions *SessionService
}

func NewAccountService(db *gorm.DB, identity IdentityProvider, sessions *SessionService) *AccountService {
	return &AccountService{
		db:       db,
		profiles: repositories.NewPostgresProfileRepository(db),
		identity: identity,
		sessions: sessions,
	}
}

// SignUp creates the identity and its profile together. Identity rows kept in our database
// share the profile's transaction; an identity held by an external provider is deleted again
// if the profile cannot be written.
func (s *AccountService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.Session, *models.Profile, error) {
	var (
		createdID string
		profile   *models.Profile
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.identity.WithTx(tx).CreateIdentity(ctx, req.Email, req.Password)
		if err != nil {
			return err
		}
		createdID = id
		profile = &models.Profile{ID: id, Username: req.Username, FullName: req.FullName}
		return repositories.NewPostgresProfileRepository(tx).CreateProfile(ctx, profile)
	})
	if err != nil {
		if createdID != "" {
			s.compensateIdentity(ctx, createdID)
		}
		return nil, nil, err
	}

	session, err := s.sessions.IssueToken(profile.ID, req.Email)
	if err != nil {
		return nil, nil, err
	}
	return session, profile, nil
}

func (s *AccountService) compensateIdentity(ctx context.Context, id string) {
	if err := s.identity.DeleteIdentity(ctx, id); err != nil && !errors.Is(err, repositories.ErrIdentityNotFound) {
		log.Printf("Error removing identity %s after failed sign-up: %v", id, err)
	}
}

// SignIn checks credentials with the identity provider and issues a session.
func (s *AccountService) SignIn(ctx context.Context, req models.SignInRequest) (*models.Session, error) {
	userID, err := s.identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.sessions.IssueToken(userID, strings.ToLower(strings.TrimSpace(req.Email)))
}

// FirebaseLogin exchanges a provider ID token for a session, creating the profile on first
// login.
func (s *AccountService) FirebaseLogin(ctx context.Context, req models.FirebaseLoginRequest) (*models.Session, *models.Profile, error) {
	ext, err := s.identity.VerifyToken(ctx, req.IDToken)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profiles.GetProfileByID(ctx, ext.UserID)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		username := req.Username
		if username == "" {
			username = defaultUsername(ext)
		}
		profile = &models.Profile{ID: ext.UserID, Username: username, FullName: ext.Name}
		err = s.profiles.CreateProfile(ctx, profile)
	}
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.IssueToken(profile.ID, ext.Email)
	if err != nil {
		return nil, nil, err
	}
	return session, profile, nil
}

// defaultUsername derives a username from the email's local part plus an id suffix.
func defaultUsername(ext *ExternalIdentity) string {
	local, _, _ := strings.Cut(ext.Email, "@")
	base := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, local)
	if base == "" {
		base = "user"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	suffix := ext.UserID
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return base + strings.ToLower(suffix)
}

// SignOut revokes the viewer's session token and any provider sessions.
func (s *AccountService) SignOut(ctx context.Context, viewer models.Viewer) error {
	if !viewer.Authenticated() {
		return ErrLoginToContinue
	}
	if err := s.sessions.Revoke(ctx, viewer); err != nil {
		return err
	}
	return s.identity.RevokeSessions(ctx, viewer.UserID)
}

func (s *AccountService) Profile(ctx context.Context, viewer models.Viewer) (*models.Profile, error) {
	if !viewer.Authenticated() {
		return nil, ErrLoginToContinue
	}
	return s.profiles.GetProfileByID(ctx, viewer.UserID)
}

// UpdateProfile applies the non-empty fields of req to the viewer's profile.
func (s *AccountService) UpdateProfile(ctx context.Context, viewer models.Viewer, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.Profile(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if req.Username != "" {
		profile.Username = req.Username
	}
	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword rejects a mismatched confirmation before contacting the provider.
func (s *AccountService) ChangePassword(ctx context.Context, viewer models.Viewer, req models.ChangePasswordRequest) error {
	if !viewer.Authenticated() {
		return ErrLoginToContinue
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return s.identity.UpdatePassword(ctx, viewer.UserID, req.NewPassword)
}

// DeleteAccount deletes the viewer's account. Every session of the account ends with it.
func (s *AccountService) DeleteAccount(ctx context.Context, viewer models.Viewer) error {
	if !viewer.Authenticated() {
		return ErrLoginToContinue
	}
	return s.DeleteAccountByID(ctx, viewer.UserID)
}

// DeleteAccountByID removes the user's posts, then the profile, then the identity, in one
// transaction. The identity goes last so a provider failure rolls the rows back. Once the
// rows are gone, all of the user's sessions and unexchanged auth codes are revoked.
func (s *AccountService) DeleteAccountByID(ctx context.Context, userID string) error {
	if err := s.deleteAccountRows(ctx, userID); err != nil {
		return err
	}
	return s.sessions.RevokeUser(ctx, userID)
}

func (s *AccountService) deleteAccountRows(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := repositories.NewPostgresPostRepository(tx).DeletePostsByAuthor(ctx, userID)
		if err != nil {
			return err
		}
		profileErr := repositories.NewPostgresProfileRepository(tx).DeleteProfile(ctx, userID)
		if profileErr != nil && !errors.Is(profileErr, repositories.ErrProfileNotFound) {
			return profileErr
		}
		if err := s.identity.WithTx(tx).DeleteIdentity(ctx, userID); err != nil {
			if errors.Is(err, repositories.ErrIdentityNotFound) && profileErr == nil {
				log.Printf("Account %s had no identity record", userID)
			} else {
				return err
			}
		}
		log.Printf("Deleted account %s (%d posts)", userID, removed)
		return nil
	})
}
