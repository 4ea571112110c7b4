package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/feed"
)

const (
	boolTrue  = "true"
	boolFalse = "false"
)

// FeedService is the assembler surface the feed controllers consume.
type FeedService interface {
	Snapshot() feed.Snapshot
	Refresh(ctx context.Context)
	LoadMore(ctx context.Context)
	SetCategories(ctx context.Context, categories []string)
}

// ToggleStore is one interaction store instance (likes or bookmarks).
type ToggleStore interface {
	Toggle(ctx context.Context, articleID string) (bool, domain.ToggleResult)
	IsFlagged(articleID string) bool
	AllFlagged() []string
}

// ViewedMarker records articles as seen.
type ViewedMarker interface {
	MarkViewed(ctx context.Context, articleID string)
}

// CommentService is the remote-only comment store surface.
type CommentService interface {
	List(ctx context.Context, articleID string) ([]domain.Comment, error)
	Submit(ctx context.Context, articleID, content string) (domain.Comment, error)
	Update(ctx context.Context, commentID, content string) error
	Delete(ctx context.Context, commentID string) error
	ToggleLike(ctx context.Context, commentID string) (bool, error)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
