package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-news/feed-sync/internal/localstore"
)

type fakeResolver struct {
	identities map[string]string
}

func (r *fakeResolver) Resolve(_ context.Context, token string) (string, error) {
	if userID, ok := r.identities[token]; ok {
		return userID, nil
	}
	return "", errors.New("invalid token")
}

func newTestProvider(t *testing.T, identities map[string]string) (*Provider, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(localstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewProvider(&fakeResolver{identities: identities}, store), store
}

func TestProvider_BootstrapWithoutTokenResolvesAnonymous(t *testing.T) {
	p, _ := newTestProvider(t, nil)

	assert.Equal(t, StateLoading, p.Current().State)

	p.Bootstrap(context.Background())

	current := p.Current()
	assert.Equal(t, StateAnonymous, current.State)
	assert.Empty(t, current.UserID)
}

func TestProvider_BootstrapWithValidToken(t *testing.T) {
	p, store := newTestProvider(t, map[string]string{"tok-1": "auth0|user-1"})
	require.NoError(t, store.Set(localstore.KeyAccessToken, "tok-1"))

	p.Bootstrap(context.Background())

	current := p.Current()
	assert.Equal(t, StateAuthenticated, current.State)
	assert.Equal(t, "auth0|user-1", current.UserID)
	assert.True(t, current.Authenticated())
}

func TestProvider_BootstrapWithStaleTokenErasesIt(t *testing.T) {
	p, store := newTestProvider(t, nil)
	require.NoError(t, store.Set(localstore.KeyAccessToken, "expired"))

	p.Bootstrap(context.Background())

	assert.Equal(t, StateAnonymous, p.Current().State)
	_, ok, err := store.Get(localstore.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok, "stale token is removed")
}

func TestProvider_LoginNotifiesSubscribers(t *testing.T) {
	p, _ := newTestProvider(t, map[string]string{"tok-1": "auth0|user-1"})

	var transitions []Session
	unsubscribe := p.Subscribe(func(s Session) {
		transitions = append(transitions, s)
	})

	p.Bootstrap(context.Background())
	require.NoError(t, p.SetToken(context.Background(), "tok-1"))
	p.SignOut(context.Background())

	require.Len(t, transitions, 3)
	assert.Equal(t, StateAnonymous, transitions[0].State)
	assert.Equal(t, StateAuthenticated, transitions[1].State)
	assert.Equal(t, "auth0|user-1", transitions[1].UserID)
	assert.Equal(t, StateAnonymous, transitions[2].State)

	unsubscribe()
	require.NoError(t, p.SetToken(context.Background(), "tok-1"))
	assert.Len(t, transitions, 3, "no notification after unsubscribe")
}

func TestProvider_SetTokenRejectsInvalid(t *testing.T) {
	p, store := newTestProvider(t, nil)
	p.Bootstrap(context.Background())

	err := p.SetToken(context.Background(), "bad")
	require.Error(t, err)
	assert.Equal(t, StateAnonymous, p.Current().State)

	_, ok, getErr := store.Get(localstore.KeyAccessToken)
	require.NoError(t, getErr)
	assert.False(t, ok, "rejected token is never persisted")
}

func TestProvider_AnonymousSessionIDIsStable(t *testing.T) {
	p, _ := newTestProvider(t, nil)

	first := p.AnonymousSessionID()
	second := p.AnonymousSessionID()

	assert.True(t, strings.HasPrefix(first, "session_"))
	assert.Equal(t, first, second)
}
