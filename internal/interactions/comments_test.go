package interactions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/retry"
)

type fakeCommentRemote struct {
	mu                sync.Mutex
	ensureCalls       int
	comments          map[string][]domain.Comment
	liked             map[string]bool
	lastViewerProfile string
}

func newFakeCommentRemote() *fakeCommentRemote {
	return &fakeCommentRemote{
		comments: map[string][]domain.Comment{},
		liked:    map[string]bool{},
	}
}

func (f *fakeCommentRemote) EnsureProfile(_ context.Context, userID string, defaults domain.Profile) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	profile := defaults
	profile.ID = "profile-" + userID
	profile.UserID = userID
	return profile, nil
}

func (f *fakeCommentRemote) ListComments(_ context.Context, articleID, viewerProfileID string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastViewerProfile = viewerProfileID
	return f.comments[articleID], nil
}

func (f *fakeCommentRemote) TopComment(_ context.Context, articleID string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.comments[articleID]
	if len(list) == 0 {
		return nil, nil
	}
	top := list[len(list)-1]
	return &top, nil
}

func (f *fakeCommentRemote) InsertComment(_ context.Context, articleID, profileID, content string) (domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := domain.Comment{
		ID:        "c1",
		ArticleID: articleID,
		ProfileID: profileID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	f.comments[articleID] = append(f.comments[articleID], c)
	return c, nil
}

func (f *fakeCommentRemote) UpdateComment(_ context.Context, commentID, profileID, content string) error {
	return nil
}

func (f *fakeCommentRemote) DeleteComment(_ context.Context, commentID, profileID string) error {
	return nil
}

func (f *fakeCommentRemote) ToggleCommentLike(_ context.Context, commentID, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liked[commentID] = !f.liked[commentID]
	return f.liked[commentID], nil
}

func newTestCommentStore(t *testing.T, remote *fakeCommentRemote, authenticated bool) *CommentStore {
	t.Helper()
	local := newTestLocal(t)
	sessions := newTestSessions(t, local)
	if authenticated {
		signIn(t, sessions)
	}
	s := NewCommentStore(remote, sessions)
	s.policy = retry.DefaultPolicy(retry.WithMaxAttempts(1), retry.WithBaseDelay(time.Millisecond))
	return s
}

func TestCommentStoreSubmit_RequiresSession(t *testing.T) {
	s := newTestCommentStore(t, newFakeCommentRemote(), false)

	_, err := s.Submit(context.Background(), "a1", "hola")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCommentStoreSubmit_EnsuresProfileOnce(t *testing.T) {
	remote := newFakeCommentRemote()
	s := newTestCommentStore(t, remote, true)

	first, err := s.Submit(context.Background(), "a1", "hola")
	require.NoError(t, err)
	assert.Equal(t, "profile-user-1", first.ProfileID)

	_, err = s.Submit(context.Background(), "a1", "otra vez")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.ensureCalls, "profile resolution should be cached per session")
}

func TestCommentStoreList(t *testing.T) {
	remote := newFakeCommentRemote()
	remote.comments["a1"] = []domain.Comment{
		{ID: "c1", ArticleID: "a1", Content: "primero"},
		{ID: "c2", ArticleID: "a1", Content: "segundo"},
	}

	t.Run("mock articles have no remote comments", func(t *testing.T) {
		s := newTestCommentStore(t, remote, true)
		got, err := s.List(context.Background(), "mock-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("anonymous viewer lists without a profile", func(t *testing.T) {
		s := newTestCommentStore(t, remote, false)
		got, err := s.List(context.Background(), "a1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Empty(t, remote.lastViewerProfile)
	})

	t.Run("authenticated viewer lists with their profile", func(t *testing.T) {
		s := newTestCommentStore(t, remote, true)
		got, err := s.List(context.Background(), "a1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "profile-user-1", remote.lastViewerProfile)
	})
}

func TestCommentStoreToggleLike(t *testing.T) {
	remote := newFakeCommentRemote()
	s := newTestCommentStore(t, remote, true)

	liked, err := s.ToggleLike(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = s.ToggleLike(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCommentStoreTopComment(t *testing.T) {
	remote := newFakeCommentRemote()
	remote.comments["a1"] = []domain.Comment{
		{ID: "c1", ArticleID: "a1", Content: "primero"},
		{ID: "c2", ArticleID: "a1", Content: "segundo"},
	}
	s := newTestCommentStore(t, remote, false)

	top, err := s.TopComment(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "c2", top.ID)

	top, err = s.TopComment(context.Background(), "mock-1")
	require.NoError(t, err)
	assert.Nil(t, top)
}
