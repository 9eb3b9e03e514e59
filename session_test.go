package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosyadil/giettenerife-crm/internal/supatest"
)

func newTestSession(t *testing.T) (*Session, *supatest.Server) {
	t.Helper()
	srv := supatest.New()
	t.Cleanup(srv.Close)
	srv.AddUser("rep@giet.es", "secret")
	b, err := NewBackend(srv.URL(), "anon-key")
	require.NoError(t, err)
	return NewSession(b), srv
}

func TestSignIn_Success(t *testing.T) {
	sess, _ := newTestSession(t)
	assert.Equal(t, StateSignedOut, sess.State())

	u, err := sess.SignIn(context.Background(), "rep@giet.es", "secret")
	require.NoError(t, err)
	assert.Equal(t, "rep@giet.es", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, StateSignedIn, sess.State())

	cur, ok := sess.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, u, cur)
}

func TestSignIn_WrongCredentialsIsStructuredFailure(t *testing.T) {
	sess, _ := newTestSession(t)

	_, err := sess.SignIn(context.Background(), "rep@giet.es", "wrong")
	assert.True(t, IsAuth(err), "expected AuthError, got %v", err)
	assert.Equal(t, StateSignedOut, sess.State())
	_, ok := sess.CurrentUser()
	assert.False(t, ok)
}

func TestSignOut_Idempotent(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.SignIn(ctx, "rep@giet.es", "secret")
	require.NoError(t, err)

	require.NoError(t, sess.SignOut(ctx))
	assert.Equal(t, StateSignedOut, sess.State())
	// a second sign-out is a no-op
	require.NoError(t, sess.SignOut(ctx))
	assert.Equal(t, StateSignedOut, sess.State())
}

func TestVerify_ResolvesSignedInUser(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	u, err := sess.SignIn(ctx, "rep@giet.es", "secret")
	require.NoError(t, err)

	got, err := sess.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.Equal(t, StateSignedIn, sess.State())
}

func TestVerify_StaleTokenClearsSession(t *testing.T) {
	sess, srv := newTestSession(t)
	ctx := context.Background()

	_, err := sess.SignIn(ctx, "rep@giet.es", "secret")
	require.NoError(t, err)

	// Revoking server-side makes the held token stale.
	require.NoError(t, sess.SignOut(ctx))
	_, err = sess.SignIn(ctx, "rep@giet.es", "secret")
	require.NoError(t, err)
	srv.RevokeAll()

	_, err = sess.Verify(ctx)
	assert.True(t, IsAuth(err), "expected AuthError, got %v", err)
	assert.Equal(t, StateSignedOut, sess.State())
}

func TestVerify_SignedOut(t *testing.T) {
	sess, _ := newTestSession(t)
	_, err := sess.Verify(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCurrentUser_AbsenceIsNotAnError(t *testing.T) {
	sess, _ := newTestSession(t)
	u, ok := sess.CurrentUser()
	assert.False(t, ok)
	assert.True(t, u.IsZero())
}

func TestUnconfiguredSession(t *testing.T) {
	b, err := NewBackend("", "anon-key")
	require.NoError(t, err)
	sess := NewSession(b)

	assert.False(t, sess.IsConfigured())
	assert.Equal(t, StateUnconfigured, sess.State())

	_, err = sess.SignIn(context.Background(), "rep@giet.es", "secret")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, sess.SignOut(context.Background()))
}

func TestDataPlaneUsesUserTokenAfterSignIn(t *testing.T) {
	srv := supatest.New()
	t.Cleanup(srv.Close)
	srv.AddUser("rep@giet.es", "secret")
	b, err := NewBackend(srv.URL(), "anon-key")
	require.NoError(t, err)
	sess := NewSession(b)

	assert.Equal(t, "anon-key", b.bearerToken())
	_, err = sess.SignIn(context.Background(), "rep@giet.es", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "anon-key", b.bearerToken(), "signed-in data plane must bear the user token")

	require.NoError(t, sess.SignOut(context.Background()))
	assert.Equal(t, "anon-key", b.bearerToken())
}
