package controller

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/interactions"
)

type CommentLikeToggle struct {
	Comments CommentService
}

type CommentLikeToggleResponse struct {
	CommentID string `json:"comment_id"`
	Liked     bool   `json:"liked"`
}

func (c CommentLikeToggle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["comment_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("comment_id", commentID))

	liked, err := c.Comments.ToggleLike(ctx, commentID)
	if errors.Is(err, interactions.ErrNotAuthenticated) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to toggle comment like", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, CommentLikeToggleResponse{
		CommentID: commentID,
		Liked:     liked,
	})
}
