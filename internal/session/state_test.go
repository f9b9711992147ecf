package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umutcano/staffhub-backend/internal/models"
)

func TestStateLifecycle(t *testing.T) {
	state := NewState()

	assert.True(t, state.IsLoading())
	assert.Equal(t, PhaseUnknown, state.Phase())
	_, ok := state.Current()
	assert.False(t, ok)

	p := &Principal{UID: uuid.New(), LoginID: "EMP-1", Role: models.RoleEmployee}
	state.Set(p)
	assert.False(t, state.IsLoading())
	assert.Equal(t, PhaseAuthenticated, state.Phase())
	got, ok := state.Current()
	require.True(t, ok)
	assert.Equal(t, p.UID, got.UID)

	state.Clear()
	assert.Equal(t, PhaseAnonymous, state.Phase())
	_, ok = state.Current()
	assert.False(t, ok)
	// Anonymous is a settled phase, not loading.
	assert.False(t, state.IsLoading())
}

func TestStateLastWriteWins(t *testing.T) {
	state := NewState()

	first := &Principal{UID: uuid.New(), LoginID: "EMP-1", Role: models.RoleEmployee}
	second := &Principal{UID: uuid.New(), LoginID: "MGR-1", Role: models.RoleManager}

	state.Set(first)
	state.Set(second)

	got, ok := state.Current()
	require.True(t, ok)
	assert.Equal(t, second.UID, got.UID)
	assert.Equal(t, models.RoleManager, got.Role)
}

func TestStateBind(t *testing.T) {
	resolver, db, provider := newResolver(t)
	account := seedAccount(t, db, provider, "EMP-9", "", "emp9@acme.test", "s3cret-pass", models.RoleEmployee)

	state := NewState()
	unbind := state.Bind(provider, resolver)
	defer unbind()

	_, err := provider.SignIn(context.Background(), "emp9@acme.test", "s3cret-pass")
	require.NoError(t, err)

	got, ok := state.Current()
	require.True(t, ok)
	assert.Equal(t, account.UID, got.UID)

	require.NoError(t, provider.SignOut(context.Background(), account.UID))
	assert.Equal(t, PhaseAnonymous, state.Phase())
}

func TestStateBindIntegrityFault(t *testing.T) {
	resolver, _, provider := newResolver(t)

	// Identity without an account record: the session must settle to
	// anonymous, not error or stay loading.
	_, err := provider.CreateIdentity(context.Background(), "ghost@acme.test", "s3cret-pass", "Ghost")
	require.NoError(t, err)

	state := NewState()
	unbind := state.Bind(provider, resolver)
	defer unbind()

	_, err = provider.SignIn(context.Background(), "ghost@acme.test", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, PhaseAnonymous, state.Phase())
}

func TestStateBindUnsubscribe(t *testing.T) {
	resolver, db, provider := newResolver(t)
	seedAccount(t, db, provider, "EMP-10", "", "emp10@acme.test", "s3cret-pass", models.RoleEmployee)

	state := NewState()
	unbind := state.Bind(provider, resolver)
	unbind()

	_, err := provider.SignIn(context.Background(), "emp10@acme.test", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, state.IsLoading(), "unsubscribed state must not receive events")
}
