package controller

import (
	"net/http"
)

// FlaggedList returns the flagged article IDs for one interaction
// store, most recently toggled first.
type FlaggedList struct {
	Store ToggleStore
}

type FlaggedListResponse struct {
	ArticleIDs []string `json:"article_ids"`
}

func (c FlaggedList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, FlaggedListResponse{
		ArticleIDs: c.Store.AllFlagged(),
	})
}
