package controller

import (
	"net/http"
	"strings"
)

// FeedRefresh refetches the first page. A categories query parameter
// drives the category-switch path, which keeps the rendered articles in
// place instead of blanking the feed while the new page loads.
type FeedRefresh struct {
	Feed FeedService
}

func (c FeedRefresh) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("categories") {
		var categories []string
		if raw := r.URL.Query().Get("categories"); raw != "" {
			categories = strings.Split(raw, ",")
		}
		c.Feed.SetCategories(r.Context(), categories)
	} else {
		c.Feed.Refresh(r.Context())
	}

	writeJSON(w, r, http.StatusOK, c.Feed.Snapshot())
}
