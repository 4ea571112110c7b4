package router

import (
	"net/http"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/session"
)

// requireSessionMiddleware guards endpoints that only make sense with a
// logged-in engine session, such as comment writes.
func requireSessionMiddleware(sessions *session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Current().Authenticated() {
				logger := domain.LoggerFromContext(r.Context())
				logger.ErrorContext(r.Context(), "attempt to use endpoint requiring auth without a session")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
