package domain

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// ContextWithLogger attaches a logger to the context so lower layers can
// log with request-scoped attributes.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext returns the context's logger, or the process default
// when none was attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := ctx.Value(loggerContextKey)
	if logger == nil {
		return slog.Default()
	}
	return logger.(*slog.Logger)
}

const userContextKey contextKey = "user"

// ContextWithUserID attaches the authenticated user identity to the context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// UserIDFromContext returns the authenticated user identity, or the empty
// string for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	userID := ctx.Value(userContextKey)
	if userID == nil {
		return ""
	}
	return userID.(string)
}
