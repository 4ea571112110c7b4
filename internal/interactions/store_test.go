package interactions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/localstore"
	"github.com/centinela-news/feed-sync/internal/retry"
	"github.com/centinela-news/feed-sync/internal/session"
)

type staticResolver map[string]string

func (r staticResolver) Resolve(_ context.Context, token string) (string, error) {
	userID, ok := r[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return userID, nil
}

func newTestLocal(t *testing.T) *localstore.Store {
	t.Helper()
	local, err := localstore.Open(localstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })
	return local
}

func newTestSessions(t *testing.T, local *localstore.Store) *session.Provider {
	t.Helper()
	p := session.NewProvider(staticResolver{"valid-token": "user-1"}, local)
	p.Bootstrap(context.Background())
	return p
}

func signIn(t *testing.T, p *session.Provider) {
	t.Helper()
	require.NoError(t, p.SetToken(context.Background(), "valid-token"))
}

type fakeInteractionRemote struct {
	mu        sync.Mutex
	upserts   map[string]domain.InteractionRecord
	removes   []string
	writeErr  error
	flagged   []domain.InteractionRecord
	listErr   error
	cleared   bool
	likeCount int64
}

func newFakeInteractionRemote() *fakeInteractionRemote {
	return &fakeInteractionRemote{upserts: map[string]domain.InteractionRecord{}}
}

func (f *fakeInteractionRemote) UpsertInteraction(_ context.Context, _ domain.InteractionKind, _ string, rec domain.InteractionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.upserts[rec.ArticleID] = rec
	return nil
}

func (f *fakeInteractionRemote) RemoveInteraction(_ context.Context, _ domain.InteractionKind, _, articleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.removes = append(f.removes, articleID)
	return nil
}

func (f *fakeInteractionRemote) ListFlaggedInteractions(_ context.Context, _ domain.InteractionKind, _ string) ([]domain.InteractionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flagged, f.listErr
}

func (f *fakeInteractionRemote) ClearInteractions(_ context.Context, _ domain.InteractionKind, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = true
	return nil
}

func (f *fakeInteractionRemote) CountArticleLikes(_ context.Context, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likeCount, nil
}

func newQuietStore(t *testing.T, remote *fakeInteractionRemote, sessions *session.Provider, local *localstore.Store) *Store {
	t.Helper()
	s := NewStore(domain.InteractionLike, localstore.KeyLikes, local, remote, sessions)
	s.policy = retry.DefaultPolicy(retry.WithMaxAttempts(1), retry.WithBaseDelay(time.Millisecond))
	t.Cleanup(s.Close)
	return s
}

func TestStoreToggle_DoubleToggleRestoresInitialState(t *testing.T) {
	local := newTestLocal(t)
	s := newQuietStore(t, newFakeInteractionRemote(), newTestSessions(t, local), local)

	flag, result := s.Toggle(context.Background(), "a1")
	assert.True(t, flag)
	assert.Equal(t, domain.ToggleApplied, result)
	assert.True(t, s.IsFlagged("a1"))

	flag, result = s.Toggle(context.Background(), "a1")
	assert.False(t, flag)
	assert.Equal(t, domain.ToggleApplied, result)
	assert.False(t, s.IsFlagged("a1"))
}

func TestStoreToggle_AuthenticatedWritesRemote(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	signIn(t, sessions)
	remote := newFakeInteractionRemote()
	s := newQuietStore(t, remote, sessions, local)

	flag, result := s.Toggle(context.Background(), "a1")
	assert.True(t, flag)
	assert.Equal(t, domain.ToggleApplied, result)
	rec, ok := remote.upserts["a1"]
	require.True(t, ok)
	assert.True(t, rec.Flag)

	flag, result = s.Toggle(context.Background(), "a1")
	assert.False(t, flag)
	assert.Equal(t, domain.ToggleApplied, result)
	assert.Equal(t, []string{"a1"}, remote.removes)
}

func TestStoreToggle_NetworkFailureKeepsOptimisticState(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	signIn(t, sessions)
	remote := newFakeInteractionRemote()
	remote.writeErr = domain.WrapNetworkError(errors.New("connection refused"))
	s := newQuietStore(t, remote, sessions, local)

	flag, result := s.Toggle(context.Background(), "a1")
	assert.True(t, flag)
	assert.Equal(t, domain.ToggleAppliedOfflineOnly, result)
	assert.True(t, s.IsFlagged("a1"))

	// The local flag keeps following toggle calls while offline.
	flag, result = s.Toggle(context.Background(), "a1")
	assert.False(t, flag)
	assert.Equal(t, domain.ToggleAppliedOfflineOnly, result)
	assert.False(t, s.IsFlagged("a1"))
}

func TestStoreToggle_RemoteRejectionRollsBack(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	signIn(t, sessions)
	remote := newFakeInteractionRemote()
	remote.writeErr = domain.WrapRemoteError(errors.New("constraint violation"))
	s := newQuietStore(t, remote, sessions, local)

	flag, result := s.Toggle(context.Background(), "a1")
	assert.False(t, flag)
	assert.Equal(t, domain.ToggleRolledBack, result)
	assert.False(t, s.IsFlagged("a1"))
}

func TestStoreToggle_MockArticleStaysLocal(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	signIn(t, sessions)
	remote := newFakeInteractionRemote()
	s := newQuietStore(t, remote, sessions, local)

	flag, result := s.Toggle(context.Background(), "mock-1")
	assert.True(t, flag)
	assert.Equal(t, domain.ToggleApplied, result)
	assert.Empty(t, remote.upserts)
}

func TestStore_PersistsAcrossReload(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	remote := newFakeInteractionRemote()

	s := newQuietStore(t, remote, sessions, local)
	s.Toggle(context.Background(), "a1")
	s.Toggle(context.Background(), "a2")
	s.Toggle(context.Background(), "a2")

	reloaded := newQuietStore(t, remote, sessions, local)
	assert.True(t, reloaded.IsFlagged("a1"))
	assert.False(t, reloaded.IsFlagged("a2"))
}

func TestStoreAllFlagged_MostRecentFirst(t *testing.T) {
	local := newTestLocal(t)
	s := newQuietStore(t, newFakeInteractionRemote(), newTestSessions(t, local), local)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := base
	s.now = func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	}

	s.Toggle(context.Background(), "a1")
	s.Toggle(context.Background(), "a2")
	s.Toggle(context.Background(), "a3")

	assert.Equal(t, []string{"a3", "a2", "a1"}, s.AllFlagged())
}

func TestStoreReconcile_PushesLocalAndMergesRemote(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	remote := newFakeInteractionRemote()
	s := newQuietStore(t, remote, sessions, local)

	s.Toggle(context.Background(), "local-1")
	s.Toggle(context.Background(), "mock-1")
	signIn(t, sessions)

	remote.mu.Lock()
	remote.flagged = []domain.InteractionRecord{
		{ArticleID: "remote-1", Flag: true, Timestamp: time.Now().UnixMilli()},
	}
	remote.mu.Unlock()

	s.Reconcile(context.Background())

	remote.mu.Lock()
	_, pushedLocal := remote.upserts["local-1"]
	_, pushedMock := remote.upserts["mock-1"]
	remote.mu.Unlock()
	assert.True(t, pushedLocal, "local flag should be pushed up")
	assert.False(t, pushedMock, "fallback dataset flags never leave the device")
	assert.True(t, s.IsFlagged("remote-1"), "remote flag should be merged down")
	assert.True(t, s.IsFlagged("local-1"))
}

func TestStoreClearAll(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	signIn(t, sessions)
	remote := newFakeInteractionRemote()
	s := newQuietStore(t, remote, sessions, local)

	s.Toggle(context.Background(), "a1")
	s.ClearAll(context.Background())

	assert.False(t, s.IsFlagged("a1"))
	assert.True(t, remote.cleared)

	_, ok, err := local.Get(localstore.KeyLikes)
	require.NoError(t, err)
	assert.False(t, ok, "persisted key should be erased")
}

func TestStoreLikeCount(t *testing.T) {
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	remote := newFakeInteractionRemote()
	remote.likeCount = 42
	s := newQuietStore(t, remote, sessions, local)

	assert.Zero(t, s.LikeCount(context.Background(), "a1"), "anonymous engine reports zero")

	signIn(t, sessions)
	assert.Equal(t, int64(42), s.LikeCount(context.Background(), "a1"))
	assert.Zero(t, s.LikeCount(context.Background(), "mock-1"), "fallback dataset has no remote rows")
}
