package controller

import (
	"net/http"
)

type FeedSnapshot struct {
	Feed FeedService
}

func (c FeedSnapshot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, c.Feed.Snapshot())
}
