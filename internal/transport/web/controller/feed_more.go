package controller

import (
	"net/http"
)

type FeedMore struct {
	Feed FeedService
}

func (c FeedMore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Feed.LoadMore(r.Context())
	writeJSON(w, r, http.StatusOK, c.Feed.Snapshot())
}
