package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/session"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware validates Bearer tokens from the view layer and
// adopts them into the engine session. Requests without a token pass
// through anonymously; public endpoints stay reachable.
func NewAuthMiddleware(sessions *session.Provider, resolver session.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			token := authHeader[len(bearerPrefix):]
			userID, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				logger := domain.LoggerFromContext(r.Context())
				logger.WarnContext(r.Context(), "authentication failed", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = fmt.Fprint(w, `{"message":"invalid token"}`)
				return
			}

			// First request with a new identity logs the engine in,
			// which triggers the stores' reconciliation hooks.
			if sessions.UserID() != userID {
				if err := sessions.SetToken(r.Context(), token); err != nil {
					logger := domain.LoggerFromContext(r.Context())
					logger.WarnContext(r.Context(), "adopting session token failed", "error", err)
				}
			}

			ctx := domain.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
