package controller

import (
	"encoding/json"
	"net/http"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/localstore"
)

// Absence of the persisted preference means notifications are off.

type NotificationPreferenceGet struct {
	Local *localstore.Store
}

type NotificationPreferenceResponse struct {
	Enabled bool `json:"enabled"`
}

func (c NotificationPreferenceGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	value, ok, err := c.Local.Get(localstore.KeyNotifications)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to read notification preference", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, NotificationPreferenceResponse{
		Enabled: ok && value == boolTrue,
	})
}

type NotificationPreferenceSet struct {
	Local *localstore.Store
}

type NotificationPreferenceRequest struct {
	Enabled bool `json:"enabled"`
}

func (c NotificationPreferenceSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var req NotificationPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "unable to decode notification preference body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	value := boolFalse
	if req.Enabled {
		value = boolTrue
	}
	if err := c.Local.Set(localstore.KeyNotifications, value); err != nil {
		logger.ErrorContext(ctx, "unable to persist notification preference", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, NotificationPreferenceResponse{Enabled: req.Enabled})
}
