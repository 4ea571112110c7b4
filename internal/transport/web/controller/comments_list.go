package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centinela-news/feed-sync/internal/domain"
)

type CommentsList struct {
	Comments CommentService
}

type CommentsListResponse struct {
	Comments []domain.Comment `json:"comments"`
}

func (c CommentsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID := mux.Vars(r)["article_id"]

	comments, err := c.Comments.List(r.Context(), articleID)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to list comments", "article_id", articleID, "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, CommentsListResponse{Comments: comments})
}
