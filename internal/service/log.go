package service

import (
	"context"
	"log/slog"

	"github.com/Jovalentine/Digi-market/pkg/logger"
)

// sessionLogger returns the request-scoped logger, tagged with sessionID
// unless the request already carries that session.
func sessionLogger(ctx context.Context, base *slog.Logger, sessionID string) *slog.Logger {
	l := logger.FromContextOr(ctx, base)
	if sessionID != "" && logger.SessionIDFromContext(ctx) != sessionID {
		l = l.With(slog.String("session_id", sessionID))
	}
	return l
}
