package controller

import (
	"net/http"

	"github.com/centinela-news/feed-sync/internal/session"
)

type SessionGet struct {
	Sessions *session.Provider
}

type SessionResponse struct {
	State  string `json:"state"`
	UserID string `json:"user_id,omitempty"`
}

func (c SessionGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	current := c.Sessions.Current()
	writeJSON(w, r, http.StatusOK, SessionResponse{
		State:  current.State.String(),
		UserID: current.UserID,
	})
}

type SessionSignOut struct {
	Sessions *session.Provider
}

func (c SessionSignOut) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Sessions.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
