package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/testutil"
)

func newProvider(t *testing.T) *LocalProvider {
	t.Helper()
	return NewLocalProvider(testutil.NewDB(t), 5, 15*time.Minute)
}

func TestCreateIdentityAndSignIn(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	ident, err := provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Test User")
	require.NoError(t, err)
	assert.Equal(t, "user@acme.test", ident.Email)
	assert.Equal(t, "Test User", ident.DisplayName)

	signedIn, err := provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, ident.UID, signedIn.UID)
}

func TestCreateIdentityValidation(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	_, err := provider.CreateIdentity(ctx, "", "s3cret-pass", "No Email")
	assert.Error(t, err)

	_, err = provider.CreateIdentity(ctx, "short@acme.test", "short", "Short Password")
	assert.Error(t, err)
}

func TestCreateIdentityEmailTaken(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	_, err := provider.CreateIdentity(ctx, "dup@acme.test", "s3cret-pass", "First")
	require.NoError(t, err)

	_, err = provider.CreateIdentity(ctx, "dup@acme.test", "other-pass-123", "Second")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInInvalidCredentials(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	_, err := provider.SignIn(ctx, "nobody@acme.test", "whatever-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Test User")
	require.NoError(t, err)

	_, err = provider.SignIn(ctx, "user@acme.test", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInDisabled(t *testing.T) {
	provider := newProvider(t)
	db := provider.db
	ctx := context.Background()

	_, err := provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Test User")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Credential{}).
		Where("email = ?", "user@acme.test").
		Update("disabled", true).Error)

	_, err = provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	assert.ErrorIs(t, err, ErrIdentityDisabled)
}

func TestSignInRateLimitWindow(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	_, err := provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Test User")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = provider.SignIn(ctx, "user@acme.test", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// Attempts outside the window no longer count.
	cutoff := time.Now().Add(-16 * time.Minute)
	require.NoError(t, provider.db.Model(&models.LoginAttempt{}).
		Where("email = ?", "user@acme.test").
		Update("created_at", cutoff).Error)

	signedIn, err := provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user@acme.test", signedIn.Email)
}

func TestSignInSuccessResetsWindow(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	_, err := provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Test User")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err = provider.SignIn(ctx, "user@acme.test", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	require.NoError(t, err)

	var remaining int64
	require.NoError(t, provider.db.Model(&models.LoginAttempt{}).
		Where("email = ?", "user@acme.test").
		Count(&remaining).Error)
	assert.Zero(t, remaining, "a successful sign-in clears the attempt window")
}

func TestUpdateDisplayName(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	ident, err := provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Old Name")
	require.NoError(t, err)

	require.NoError(t, provider.UpdateDisplayName(ctx, ident.UID, "New Name"))

	signedIn, err := provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "New Name", signedIn.DisplayName)
}

func TestSubscribe(t *testing.T) {
	provider := newProvider(t)
	ctx := context.Background()

	ident, err := provider.CreateIdentity(ctx, "user@acme.test", "s3cret-pass", "Test User")
	require.NoError(t, err)

	var events []*Identity
	unsubscribe := provider.Subscribe(func(id *Identity) {
		events = append(events, id)
	})

	_, err = provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, provider.SignOut(ctx, ident.UID))

	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, ident.UID, events[0].UID)
	assert.Nil(t, events[1], "sign-out notifies with a nil identity")

	unsubscribe()
	_, err = provider.SignIn(ctx, "user@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Len(t, events, 2, "unsubscribed listeners receive nothing")
}
