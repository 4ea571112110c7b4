package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-news/feed-sync/internal/localstore"
)

func TestNotificationPreference_RoundTrip(t *testing.T) {
	local, err := localstore.Open(localstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	get := NotificationPreferenceGet{Local: local}
	set := NotificationPreferenceSet{Local: local}

	// Defaults to disabled before any write.
	rec := httptest.NewRecorder()
	get.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/preferences/notifications", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp NotificationPreferenceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Enabled)

	rec = httptest.NewRecorder()
	set.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/preferences/notifications",
		strings.NewReader(`{"enabled":true}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	get.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/preferences/notifications", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Enabled)

	value, ok, err := local.Get(localstore.KeyNotifications)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestNotificationPreferenceSet_MalformedBody(t *testing.T) {
	local, err := localstore.Open(localstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	rec := httptest.NewRecorder()
	NotificationPreferenceSet{Local: local}.ServeHTTP(rec,
		httptest.NewRequest(http.MethodPut, "/v1/preferences/notifications", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
