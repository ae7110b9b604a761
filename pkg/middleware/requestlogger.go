package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Jovalentine/Digi-market/pkg/logger"
)

// RequestLogger stores a logger in the request context that already carries
// the correlation, session and trace fields, plus user_id for signed-in
// shoppers. Handlers and services fetch it with logger.FromContext.
//
// It must run after RequestLogging, Tracing and Session.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.WithContext(ctx, base)
			if id := IdentityFromContext(ctx); id != nil {
				l = l.With(slog.String("user_id", id.UserID))
			}
			next.ServeHTTP(w, r.WithContext(logger.NewContext(ctx, l)))
		})
	}
}
