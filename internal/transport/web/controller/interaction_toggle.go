package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centinela-news/feed-sync/internal/domain"
)

// InteractionToggle flips a like or bookmark flag. The value path
// segment names the desired post-toggle state; if the flag is already
// there the request is a no-op reporting the current state, which makes
// retried requests safe.
type InteractionToggle struct {
	Store ToggleStore
	Kind  domain.InteractionKind
}

type InteractionToggleResponse struct {
	ArticleID string `json:"article_id"`
	Flag      bool   `json:"flag"`
	Result    string `json:"result"`
}

func (c InteractionToggle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	articleID := vars["article_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("article_id", articleID))

	var desired bool
	switch vars["value"] {
	case boolTrue:
		desired = true
	case boolFalse:
		desired = false
	default:
		logger.ErrorContext(ctx, "invalid toggle value", "value", vars["value"])
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if c.Store.IsFlagged(articleID) == desired {
		writeJSON(w, r, http.StatusOK, InteractionToggleResponse{
			ArticleID: articleID,
			Flag:      desired,
			Result:    domain.ToggleApplied.String(),
		})
		return
	}

	flag, result := c.Store.Toggle(ctx, articleID)
	writeJSON(w, r, http.StatusOK, InteractionToggleResponse{
		ArticleID: articleID,
		Flag:      flag,
		Result:    result.String(),
	})
}
