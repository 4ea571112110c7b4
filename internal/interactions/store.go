package interactions

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/centinela-news/feed-sync/internal/datasources"
	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/localstore"
	"github.com/centinela-news/feed-sync/internal/retry"
	"github.com/centinela-news/feed-sync/internal/session"
)

// Store holds one interaction flag per article, write-through persisted
// locally and reconciled with the remote store once a session exists.
// Likes and bookmarks are two instances of the same store.
//
// Toggles are optimistic: local state changes before the remote write,
// and a transient network failure never reverts it. Only an actual
// remote rejection rolls the flag back.
type Store struct {
	kind     domain.InteractionKind
	localKey string
	local    *localstore.Store
	remote   datasources.InteractionRemote
	sessions *session.Provider
	policy   retry.Policy
	now      func() time.Time

	mu      sync.Mutex
	records map[string]domain.InteractionRecord

	unsubscribe func()
}

// NewLikesStore builds the likes instance of the interaction store.
func NewLikesStore(local *localstore.Store, remote datasources.InteractionRemote, sessions *session.Provider) *Store {
	return NewStore(domain.InteractionLike, localstore.KeyLikes, local, remote, sessions)
}

// NewBookmarksStore builds the bookmarks instance of the interaction store.
func NewBookmarksStore(local *localstore.Store, remote datasources.InteractionRemote, sessions *session.Provider) *Store {
	return NewStore(domain.InteractionBookmark, localstore.KeyBookmarks, local, remote, sessions)
}

// NewStore loads persisted state and subscribes to session transitions,
// reconciling with the remote store whenever a user authenticates.
func NewStore(
	kind domain.InteractionKind,
	localKey string,
	local *localstore.Store,
	remote datasources.InteractionRemote,
	sessions *session.Provider,
) *Store {
	s := &Store{
		kind:     kind,
		localKey: localKey,
		local:    local,
		remote:   remote,
		sessions: sessions,
		policy:   retry.DefaultPolicy(),
		now:      time.Now,
		records:  map[string]domain.InteractionRecord{},
	}
	s.loadLocal(context.Background())

	s.unsubscribe = sessions.Subscribe(func(sess session.Session) {
		if !sess.Authenticated() {
			return
		}
		go s.Reconcile(context.Background())
	})

	return s
}

// Close detaches the store from session notifications.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Toggle flips the flag for an article and reports the new value along
// with how it was applied. The local flip happens before any remote
// call so callers observe the change immediately.
func (s *Store) Toggle(ctx context.Context, articleID string) (bool, domain.ToggleResult) {
	s.mu.Lock()
	prev, existed := s.records[articleID]
	rec := domain.InteractionRecord{
		ArticleID: articleID,
		Flag:      !prev.Flag,
		Timestamp: s.now().UnixMilli(),
	}
	s.records[articleID] = rec
	s.persistLocked(ctx)
	s.mu.Unlock()

	sess := s.sessions.Current()
	if !sess.Authenticated() || domain.IsMockArticleID(articleID) {
		return rec.Flag, domain.ToggleApplied
	}

	var err error
	if rec.Flag {
		err = s.remote.UpsertInteraction(ctx, s.kind, sess.UserID, rec)
	} else {
		err = s.remote.RemoveInteraction(ctx, s.kind, sess.UserID, articleID)
	}
	if err == nil {
		return rec.Flag, domain.ToggleApplied
	}

	if domain.IsNetworkError(err) {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "remote interaction write failed, keeping local state",
			slog.String("kind", string(s.kind)),
			slog.String("article_id", articleID),
			slog.String("error", err.Error()))
		return rec.Flag, domain.ToggleAppliedOfflineOnly
	}

	domain.LoggerFromContext(ctx).ErrorContext(ctx, "remote interaction write rejected, rolling back",
		slog.String("kind", string(s.kind)),
		slog.String("article_id", articleID),
		slog.String("error", err.Error()))

	s.mu.Lock()
	if existed {
		s.records[articleID] = prev
	} else {
		delete(s.records, articleID)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	return prev.Flag, domain.ToggleRolledBack
}

// IsFlagged reports the current local flag for an article.
func (s *Store) IsFlagged(articleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[articleID].Flag
}

// AllFlagged returns the flagged article IDs, most recently toggled first.
func (s *Store) AllFlagged() []string {
	s.mu.Lock()
	flagged := make([]domain.InteractionRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Flag {
			flagged = append(flagged, rec)
		}
	}
	s.mu.Unlock()

	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].Timestamp > flagged[j].Timestamp
	})

	ids := make([]string, 0, len(flagged))
	for _, rec := range flagged {
		ids = append(ids, rec.ArticleID)
	}
	return ids
}

// LikeCount reports the remote like total for an article. Articles from
// the bundled fallback dataset have no remote rows, and an anonymous or
// offline engine reports zero rather than failing.
func (s *Store) LikeCount(ctx context.Context, articleID string) int64 {
	if domain.IsMockArticleID(articleID) || !s.sessions.Current().Authenticated() {
		return 0
	}

	count, err := s.remote.CountArticleLikes(ctx, articleID)
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "counting article likes failed",
			slog.String("article_id", articleID),
			slog.String("error", err.Error()))
		return 0
	}
	return count
}

// Reconcile pushes local flags up and then pulls the canonical remote
// state down. Called on every authentication transition.
func (s *Store) Reconcile(ctx context.Context) {
	s.SyncToRemote(ctx)
	s.LoadFromRemote(ctx)
}

// SyncToRemote upserts every locally flagged record for the current
// user. Per-record failures are logged and skipped; a partial sync is
// fine because LoadFromRemote runs after it.
func (s *Store) SyncToRemote(ctx context.Context) {
	sess := s.sessions.Current()
	if !sess.Authenticated() {
		return
	}

	s.mu.Lock()
	flagged := make([]domain.InteractionRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Flag && !domain.IsMockArticleID(rec.ArticleID) {
			flagged = append(flagged, rec)
		}
	}
	s.mu.Unlock()

	for _, rec := range flagged {
		rec := rec
		_, err := retry.Do(ctx, s.policy, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.UpsertInteraction(ctx, s.kind, sess.UserID, rec)
		})
		if err != nil {
			domain.LoggerFromContext(ctx).WarnContext(ctx, "skipping interaction during sync",
				slog.String("kind", string(s.kind)),
				slog.String("article_id", rec.ArticleID),
				slog.String("error", err.Error()))
		}
	}
}

// LoadFromRemote merges the remote flagged records into local state.
// Remote wins on conflict; it is canonical once a user is logged in.
func (s *Store) LoadFromRemote(ctx context.Context) {
	sess := s.sessions.Current()
	if !sess.Authenticated() {
		return
	}

	remote, err := retry.Do(ctx, s.policy, func(ctx context.Context) ([]domain.InteractionRecord, error) {
		return s.remote.ListFlaggedInteractions(ctx, s.kind, sess.UserID)
	})
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "loading remote interactions failed",
			slog.String("kind", string(s.kind)),
			slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	for _, rec := range remote {
		s.records[rec.ArticleID] = rec
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// ClearAll un-flags everything remotely (best effort) and erases local
// state either way.
func (s *Store) ClearAll(ctx context.Context) {
	if sess := s.sessions.Current(); sess.Authenticated() {
		if err := s.remote.ClearInteractions(ctx, s.kind, sess.UserID); err != nil {
			domain.LoggerFromContext(ctx).WarnContext(ctx, "remote interaction clear failed",
				slog.String("kind", string(s.kind)),
				slog.String("error", err.Error()))
		}
	}

	s.mu.Lock()
	s.records = map[string]domain.InteractionRecord{}
	s.mu.Unlock()

	if err := s.local.Remove(s.localKey); err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "erasing local interactions failed",
			slog.String("key", s.localKey),
			slog.String("error", err.Error()))
	}
}

func (s *Store) loadLocal(ctx context.Context) {
	raw, ok, err := s.local.Get(s.localKey)
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "reading local interactions failed",
			slog.String("key", s.localKey),
			slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	var records []domain.InteractionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "decoding local interactions failed",
			slog.String("key", s.localKey),
			slog.String("error", err.Error()))
		return
	}

	for _, rec := range records {
		s.records[rec.ArticleID] = rec
	}
}

// persistLocked serializes the full mapping as a JSON array. Write
// failures are logged, never propagated; in-memory state stays the
// source of truth for the session.
func (s *Store) persistLocked(ctx context.Context) {
	records := make([]domain.InteractionRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})

	encoded, err := json.Marshal(records)
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "encoding local interactions failed",
			slog.String("key", s.localKey),
			slog.String("error", err.Error()))
		return
	}
	if err := s.local.Set(s.localKey, string(encoded)); err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "writing local interactions failed",
			slog.String("key", s.localKey),
			slog.String("error", err.Error()))
	}
}
