package interactions

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/localstore"
	"github.com/centinela-news/feed-sync/internal/session"
)

const (
	// Viewed records older than this are dropped on load.
	viewedRetention = 7 * 24 * time.Hour
	// Hard cap on retained records within the retention window.
	viewedMaxRecords = 1000
)

// ViewedStore tracks which articles the user has already seen. It is
// local-only: viewed state never syncs to the remote store. The
// persisted form is an append-only log compacted on load.
type ViewedStore struct {
	local    *localstore.Store
	sessions *session.Provider
	now      func() time.Time

	mu   sync.Mutex
	log  []domain.ViewedRecord
	seen map[string]bool
}

func NewViewedStore(local *localstore.Store, sessions *session.Provider) *ViewedStore {
	s := &ViewedStore{
		local:    local,
		sessions: sessions,
		now:      time.Now,
		seen:     map[string]bool{},
	}
	s.load(context.Background())
	return s
}

// MarkViewed records an article as seen. Already-seen articles are a
// no-op, keeping the persisted log free of duplicates.
func (s *ViewedStore) MarkViewed(ctx context.Context, articleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[articleID] {
		return
	}

	sessionID := s.sessions.UserID()
	if sessionID == "" {
		sessionID = s.sessions.AnonymousSessionID()
	}

	s.log = append(s.log, domain.ViewedRecord{
		ArticleID: articleID,
		ViewedAt:  s.now().UnixMilli(),
		SessionID: sessionID,
	})
	s.seen[articleID] = true
	s.persistLocked(ctx)
}

// IsViewed reports whether an article has been seen.
func (s *ViewedStore) IsViewed(articleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[articleID]
}

// ViewedCount returns the number of retained viewed records.
func (s *ViewedStore) ViewedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

// NextUnviewedIndex scans circularly from fromIndex for the first
// article not yet seen: forward to the end, then wrapping around from
// the start back up to fromIndex. When every article is viewed it
// returns fromIndex unchanged.
func (s *ViewedStore) NextUnviewedIndex(articles []domain.FeedArticle, fromIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := fromIndex; i < len(articles); i++ {
		if !s.seen[articles[i].ID] {
			return i
		}
	}
	for i := 0; i < fromIndex && i < len(articles); i++ {
		if !s.seen[articles[i].ID] {
			return i
		}
	}
	return fromIndex
}

// Clear erases all viewed state.
func (s *ViewedStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.log = nil
	s.seen = map[string]bool{}
	s.mu.Unlock()

	if err := s.local.Remove(localstore.KeyViewed); err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "erasing viewed log failed",
			slog.String("error", err.Error()))
	}
}

// load reads the persisted log, dropping records past the retention
// window and bounding the total so the log cannot grow without limit.
func (s *ViewedStore) load(ctx context.Context) {
	raw, ok, err := s.local.Get(localstore.KeyViewed)
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "reading viewed log failed",
			slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	var records []domain.ViewedRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "decoding viewed log failed",
			slog.String("error", err.Error()))
		return
	}

	cutoff := s.now().Add(-viewedRetention).UnixMilli()
	kept := make([]domain.ViewedRecord, 0, len(records))
	for _, rec := range records {
		if rec.ViewedAt >= cutoff && !s.seen[rec.ArticleID] {
			kept = append(kept, rec)
			s.seen[rec.ArticleID] = true
		}
	}
	if len(kept) > viewedMaxRecords {
		dropped := kept[:len(kept)-viewedMaxRecords]
		kept = kept[len(kept)-viewedMaxRecords:]
		for _, rec := range dropped {
			delete(s.seen, rec.ArticleID)
		}
	}
	s.log = kept

	if len(kept) != len(records) {
		s.mu.Lock()
		s.persistLocked(ctx)
		s.mu.Unlock()
	}
}

func (s *ViewedStore) persistLocked(ctx context.Context) {
	encoded, err := json.Marshal(s.log)
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "encoding viewed log failed",
			slog.String("error", err.Error()))
		return
	}
	if err := s.local.Set(localstore.KeyViewed, string(encoded)); err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "writing viewed log failed",
			slog.String("error", err.Error()))
	}
}
