package controller

import (
	"net/http"

	"github.com/gorilla/mux"
)

type ArticleViewedSet struct {
	Viewed ViewedMarker
}

func (c ArticleViewedSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID := mux.Vars(r)["article_id"]
	c.Viewed.MarkViewed(r.Context(), articleID)
	w.WriteHeader(http.StatusNoContent)
}
