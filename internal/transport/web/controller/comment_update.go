package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/interactions"
)

type CommentUpdate struct {
	Comments CommentService
}

type CommentUpdateRequest struct {
	Content string `json:"content"`
}

func (c CommentUpdate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["comment_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("comment_id", commentID))

	var req CommentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "unable to decode comment body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := c.Comments.Update(ctx, commentID, req.Content)
	if errors.Is(err, interactions.ErrNotAuthenticated) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to update comment", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
