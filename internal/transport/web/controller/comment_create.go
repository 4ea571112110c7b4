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

type CommentCreate struct {
	Comments CommentService
}

type CommentCreateRequest struct {
	Content string `json:"content"`
}

func (c CommentCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID := mux.Vars(r)["article_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("article_id", articleID))

	var req CommentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "unable to decode comment body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	comment, err := c.Comments.Submit(ctx, articleID, req.Content)
	if errors.Is(err, interactions.ErrNotAuthenticated) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to submit comment", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusCreated, comment)
}
