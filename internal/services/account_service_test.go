package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUp(t *testing.T, f *fixture, email, username string) (*models.Session, models.Viewer) {
	t.Helper()
	session, profile, err := f.accounts.SignUp(context.Background(), models.SignUpRequest{
		Email:    email,
		Password: "password123",
		Username: username,
		FullName: username,
	})
	require.NoError(t, err)
	viewer, err := f.sessions.Verify(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, profile.ID, viewer.UserID)
	return session, viewer
}

func TestSignUpAndSignIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, viewer := signUp(t, f, "Ada@Example.com", "ada")

	profile, err := f.accounts.Profile(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)

	session, err := f.accounts.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, viewer.UserID, session.UserID)

	_, err = f.accounts.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.accounts.SignIn(ctx, models.SignInRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_FailedProfileLeavesNoIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signUp(t, f, "ada@example.com", "ada")

	_, _, err := f.accounts.SignUp(ctx, models.SignUpRequest{
		Email: "ada@example.com", Password: "password123", Username: "other", FullName: "Other",
	})
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)

	_, _, err = f.accounts.SignUp(ctx, models.SignUpRequest{
		Email: "grace@example.com", Password: "password123", Username: "ada", FullName: "Grace",
	})
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)

	var n int64
	require.NoError(t, f.db.Model(&models.Identity{}).Where("email = ?", "grace@example.com").Count(&n).Error)
	assert.Zero(t, n)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, viewer := signUp(t, f, "ada@example.com", "ada")

	err := f.accounts.ChangePassword(ctx, viewer, models.ChangePasswordRequest{NewPassword: "newpassword1", ConfirmPassword: "newpassword2"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	require.NoError(t, f.accounts.ChangePassword(ctx, viewer, models.ChangePasswordRequest{NewPassword: "newpassword1", ConfirmPassword: "newpassword1"}))

	_, err = f.accounts.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.accounts.SignIn(ctx, models.SignInRequest{Email: "ada@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, viewer := signUp(t, f, "ada@example.com", "ada")
	signUp(t, f, "grace@example.com", "grace")

	avatar := "https://example.com/ada.png"
	profile, err := f.accounts.UpdateProfile(ctx, viewer, models.UpdateProfileRequest{FullName: "Ada Lovelace", AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	require.NotNil(t, profile.AvatarURL)

	_, err = f.accounts.UpdateProfile(ctx, viewer, models.UpdateProfileRequest{Username: "grace"})
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, viewer := signUp(t, f, "ada@example.com", "ada")
	other := f.user(t, "grace")

	mine := f.post(t, viewer.UserID, "mine", "art", 0)
	theirs := f.post(t, other.UserID, "theirs", "art", 1)
	_, err := f.interactions.SetLike(ctx, other, mine.ID, true)
	require.NoError(t, err)
	_, err = f.interactions.SetLike(ctx, viewer, theirs.ID, true)
	require.NoError(t, err)
	_, err = f.interactions.AddComment(ctx, viewer, theirs.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccount(ctx, viewer))

	_, err = f.posts.GetPostByID(ctx, mine.ID)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
	_, err = f.accounts.profiles.GetProfileByID(ctx, viewer.UserID)
	assert.ErrorIs(t, err, repositories.ErrProfileNotFound)
	var n int64
	require.NoError(t, f.db.Model(&models.Identity{}).Count(&n).Error)
	assert.Zero(t, n)

	view, err := f.feed.Post(ctx, other, theirs.ID)
	require.NoError(t, err)
	assert.Zero(t, view.LikeCount)
	comments, err := f.interactions.Comments(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = f.sessions.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	assert.ErrorIs(t, f.accounts.DeleteAccountByID(ctx, viewer.UserID), repositories.ErrIdentityNotFound)
}

func TestDeleteAccount_EndsCodesAndOtherSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, viewer := signUp(t, f, "bob@example.com", "bob")

	code, err := f.sessions.IssueAuthCode(ctx, viewer)
	require.NoError(t, err)
	other, err := f.accounts.SignIn(ctx, models.SignInRequest{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccount(ctx, viewer))

	_, err = f.sessions.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = f.sessions.Verify(ctx, other.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestDeleteAccountByID_RevokesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, viewer := signUp(t, f, "bob@example.com", "bob")
	code, err := f.sessions.IssueAuthCode(ctx, viewer)
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccountByID(ctx, viewer.UserID))

	_, err = f.sessions.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = f.sessions.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

type fakeFirebase struct {
	created []string
	deleted []string
	revoked []string
	nextUID string
	token   *auth.Token
}

func (f *fakeFirebase) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	f.created = append(f.created, f.nextUID)
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: f.nextUID}}, nil
}

func (f *fakeFirebase) UpdateUser(_ context.Context, uid string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid}}, nil
}

func (f *fakeFirebase) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeFirebase) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if f.token == nil || idToken != "valid" {
		return nil, errors.New("bad token")
	}
	return f.token, nil
}

func (f *fakeFirebase) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

func TestFirebaseSignUp_CompensatesFailedProfile(t *testing.T) {
	f := newFixture(t)
	fb := &fakeFirebase{nextUID: "fb-new"}
	accounts := NewAccountService(f.db, NewFirebaseIdentityProvider(fb), f.sessions)
	f.user(t, "taken")

	_, _, err := accounts.SignUp(context.Background(), models.SignUpRequest{
		Email: "new@example.com", Password: "password123", Username: "taken", FullName: "New",
	})
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)
	assert.Equal(t, []string{"fb-new"}, fb.deleted)
}

func TestFirebaseLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fb := &fakeFirebase{token: &auth.Token{
		UID:    "FBUID123456",
		Claims: map[string]interface{}{"email": "grace.hopper@example.com", "name": "Grace Hopper"},
	}}
	accounts := NewAccountService(f.db, NewFirebaseIdentityProvider(fb), f.sessions)

	_, _, err := accounts.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "forged"})
	assert.ErrorIs(t, err, ErrInvalidSession)

	session, profile, err := accounts.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "valid"})
	require.NoError(t, err)
	assert.Equal(t, "FBUID123456", session.UserID)
	assert.Equal(t, "gracehopperfbuid1", profile.Username)
	assert.Equal(t, "Grace Hopper", profile.FullName)

	_, again, err := accounts.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "valid", Username: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, profile.Username, again.Username)

	_, err = accounts.SignIn(ctx, models.SignInRequest{Email: "grace.hopper@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	viewer, err := f.sessions.Verify(ctx, session.Token)
	require.NoError(t, err)
	require.NoError(t, accounts.SignOut(ctx, viewer))
	assert.Equal(t, []string{"FBUID123456"}, fb.revoked)
}
