package interactions

import (
	"context"
	"errors"
	"sync"

	"github.com/centinela-news/feed-sync/internal/datasources"
	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/retry"
	"github.com/centinela-news/feed-sync/internal/session"
)

// ErrNotAuthenticated is returned by comment writes issued without a
// logged-in session. Comments are remote-only; there is no anonymous
// or offline comment state.
var ErrNotAuthenticated = errors.New("comment writes require an authenticated session")

// CommentStore is the remote-only comment surface. Reads retry through
// the standard backoff policy; writes surface their errors to the
// caller because the user explicitly initiated them.
type CommentStore struct {
	remote   datasources.CommentRemote
	sessions *session.Provider
	policy   retry.Policy

	mu      sync.Mutex
	profile *domain.Profile
}

func NewCommentStore(remote datasources.CommentRemote, sessions *session.Provider) *CommentStore {
	s := &CommentStore{
		remote:   remote,
		sessions: sessions,
		policy:   retry.DefaultPolicy(),
	}

	sessions.Subscribe(func(sess session.Session) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.profile = nil
	})

	return s
}

// List returns the visible comments for an article, oldest first.
// Articles from the bundled fallback dataset have no remote comments.
func (s *CommentStore) List(ctx context.Context, articleID string) ([]domain.Comment, error) {
	if domain.IsMockArticleID(articleID) {
		return []domain.Comment{}, nil
	}

	viewerProfileID := ""
	if s.sessions.Current().Authenticated() {
		if profile, err := s.ensureProfile(ctx); err == nil {
			viewerProfileID = profile.ID
		}
	}

	return retry.Do(ctx, s.policy, func(ctx context.Context) ([]domain.Comment, error) {
		return s.remote.ListComments(ctx, articleID, viewerProfileID)
	})
}

// TopComment returns the newest visible comment for an article, or nil.
func (s *CommentStore) TopComment(ctx context.Context, articleID string) (*domain.Comment, error) {
	if domain.IsMockArticleID(articleID) {
		return nil, nil
	}
	return retry.Do(ctx, s.policy, func(ctx context.Context) (*domain.Comment, error) {
		return s.remote.TopComment(ctx, articleID)
	})
}

// Submit posts a new comment as the current user, creating their
// profile on first use.
func (s *CommentStore) Submit(ctx context.Context, articleID, content string) (domain.Comment, error) {
	if domain.IsMockArticleID(articleID) {
		return domain.Comment{}, ErrNotAuthenticated
	}

	profile, err := s.requireProfile(ctx)
	if err != nil {
		return domain.Comment{}, err
	}

	return s.remote.InsertComment(ctx, articleID, profile.ID, content)
}

// Update rewrites one of the current user's comments.
func (s *CommentStore) Update(ctx context.Context, commentID, content string) error {
	profile, err := s.requireProfile(ctx)
	if err != nil {
		return err
	}
	return s.remote.UpdateComment(ctx, commentID, profile.ID, content)
}

// Delete removes one of the current user's comments.
func (s *CommentStore) Delete(ctx context.Context, commentID string) error {
	profile, err := s.requireProfile(ctx)
	if err != nil {
		return err
	}
	return s.remote.DeleteComment(ctx, commentID, profile.ID)
}

// ToggleLike flips the current user's like on a comment and reports the
// resulting state.
func (s *CommentStore) ToggleLike(ctx context.Context, commentID string) (bool, error) {
	profile, err := s.requireProfile(ctx)
	if err != nil {
		return false, err
	}
	return s.remote.ToggleCommentLike(ctx, commentID, profile.ID)
}

func (s *CommentStore) requireProfile(ctx context.Context) (domain.Profile, error) {
	if !s.sessions.Current().Authenticated() {
		return domain.Profile{}, ErrNotAuthenticated
	}
	return s.ensureProfile(ctx)
}

// ensureProfile resolves and caches the current user's profile. The
// two-step ensure-then-use keeps profile creation an explicit
// operation instead of an upsert side effect.
func (s *CommentStore) ensureProfile(ctx context.Context) (domain.Profile, error) {
	sess := s.sessions.Current()

	s.mu.Lock()
	cached := s.profile
	s.mu.Unlock()
	if cached != nil && cached.UserID == sess.UserID {
		return *cached, nil
	}

	profile, err := s.remote.EnsureProfile(ctx, sess.UserID, domain.Profile{})
	if err != nil {
		return domain.Profile{}, err
	}

	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()

	return profile, nil
}
