package controller

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/interactions"
)

type CommentDelete struct {
	Comments CommentService
}

func (c CommentDelete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["comment_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("comment_id", commentID))

	err := c.Comments.Delete(ctx, commentID)
	if errors.Is(err, interactions.ErrNotAuthenticated) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to delete comment", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
