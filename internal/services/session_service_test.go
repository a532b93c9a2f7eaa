package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/anonto42/quillpost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newSessions returns a SessionService over an in-memory store and a migrated database in
// which the profiles for userIDs exist.
func newSessions(t *testing.T, store repositories.SessionRepository, userIDs ...string) (*SessionService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	for _, id := range userIDs {
		testutil.CreateProfile(t, db, id, id)
	}
	return NewSessionService("secret", time.Hour, time.Minute, store, repositories.NewPostgresProfileRepository(db)), db
}

func TestSession_IssueAndVerify(t *testing.T) {
	sessions, _ := newSessions(t, repositories.NewMemorySessionRepository())
	ctx := context.Background()

	session, err := sessions.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)

	viewer, err := sessions.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", viewer.UserID)
	assert.Equal(t, "a@example.com", viewer.Email)
	assert.NotEmpty(t, viewer.TokenID)
	assert.True(t, viewer.Authenticated())
}

func TestSession_RejectsBadTokens(t *testing.T) {
	store := repositories.NewMemorySessionRepository()
	sessions, _ := newSessions(t, store)
	ctx := context.Background()

	_, err := sessions.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	other := NewSessionService("other-secret", time.Hour, time.Minute, store, nil)
	forged, err := other.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = sessions.Verify(ctx, forged.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	expired := NewSessionService("secret", time.Hour, time.Minute, store, nil)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = sessions.Verify(ctx, old.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSession_RevokeSignsOut(t *testing.T) {
	sessions, _ := newSessions(t, repositories.NewMemorySessionRepository())
	ctx := context.Background()

	session, err := sessions.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	other, err := sessions.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	viewer, err := sessions.Verify(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, sessions.Revoke(ctx, viewer))
	_, err = sessions.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.Verify(ctx, other.Token)
	assert.NoError(t, err)
}

func TestSession_RevokeUserEndsEverySession(t *testing.T) {
	sessions, _ := newSessions(t, repositories.NewMemorySessionRepository(), "user-1", "user-2")
	ctx := context.Background()

	first, err := sessions.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	second, err := sessions.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	bystander, err := sessions.IssueToken("user-2", "b@example.com")
	require.NoError(t, err)
	code, err := sessions.IssueAuthCode(ctx, viewerFor("user-1"))
	require.NoError(t, err)

	require.NoError(t, sessions.RevokeUser(ctx, "user-1"))

	_, err = sessions.Verify(ctx, first.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = sessions.Verify(ctx, second.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = sessions.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.Verify(ctx, bystander.Token)
	assert.NoError(t, err)
}

func TestSession_AuthCodeWorksOnce(t *testing.T) {
	sessions, _ := newSessions(t, repositories.NewMemorySessionRepository(), "user-1")
	ctx := context.Background()

	session, err := sessions.IssueToken("user-1", "a@example.com")
	require.NoError(t, err)
	viewer, err := sessions.Verify(ctx, session.Token)
	require.NoError(t, err)

	code, err := sessions.IssueAuthCode(ctx, viewer)
	require.NoError(t, err)

	exchanged, err := sessions.ExchangeCode(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, "user-1", exchanged.UserID)

	_, err = sessions.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSession_AuthCodeForMissingProfile(t *testing.T) {
	sessions, db := newSessions(t, repositories.NewMemorySessionRepository(), "user-1")
	ctx := context.Background()

	code, err := sessions.IssueAuthCode(ctx, viewerFor("user-1"))
	require.NoError(t, err)
	require.NoError(t, repositories.NewPostgresProfileRepository(db).DeleteProfile(ctx, "user-1"))

	_, err = sessions.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSession_ExpiredAuthCode(t *testing.T) {
	sessions, _ := newSessions(t, repositories.NewMemorySessionRepository(), "user-1")
	sessions.now = func() time.Time { return time.Now().Add(-time.Hour) }
	ctx := context.Background()

	code, err := sessions.IssueAuthCode(ctx, viewerFor("user-1"))
	require.NoError(t, err)

	_, err = sessions.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
