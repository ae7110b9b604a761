package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jovalentine/Digi-market/pkg/httputil"
	"github.com/Jovalentine/Digi-market/pkg/logger"
)

// SessionHeader carries the cart session of shoppers who are not signed in.
const SessionHeader = "X-Session-ID"

// Session key prefixes. Guest ids are namespaced so a header can never name
// a signed-in user's cart.
const (
	userSessionPrefix  = "user:"
	guestSessionPrefix = "guest:"
)

var guestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

type contextKeyType string

const userKey contextKeyType = "session_user"

// Identity is the signed-in user extracted from a bearer token.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// TokenValidator validates a bearer token and returns who it was issued to.
type TokenValidator func(token string) (*Identity, error)

// Session resolves the cart session of each request. A bearer token wins and
// maps to "user:<id>"; otherwise a well-formed X-Session-ID header maps to
// "guest:<id>". Requests with neither pass through without a session, while
// a bad token or malformed header is rejected with 401.
func Session(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				scheme, token, ok := strings.Cut(authHeader, " ")
				if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
					writeUnauthorized(w, r, "invalid authorization header format")
					return
				}
				id, err := validate(strings.TrimSpace(token))
				if err != nil {
					writeUnauthorized(w, r, "invalid or expired token")
					return
				}
				ctx = context.WithValue(ctx, userKey, id)
				ctx = logger.WithSessionID(ctx, userSessionPrefix+id.UserID)
				trace.SpanFromContext(ctx).SetAttributes(attribute.String("session.kind", "user"))
			} else if guest := strings.TrimSpace(r.Header.Get(SessionHeader)); guest != "" {
				if !guestIDPattern.MatchString(guest) {
					writeUnauthorized(w, r, "invalid session id")
					return
				}
				ctx = logger.WithSessionID(ctx, guestSessionPrefix+guest)
				trace.SpanFromContext(ctx).SetAttributes(attribute.String("session.kind", "guest"))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that Session could not attach a cart
// session to.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if logger.SessionIDFromContext(r.Context()) == "" {
			writeUnauthorized(w, r, "a bearer token or "+SessionHeader+" header is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the signed-in user, or nil for guests.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(userKey).(*Identity); ok {
		return id
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
		Error: &httputil.ErrorResponse{
			Code:      "UNAUTHORIZED",
			Message:   message,
			RequestID: logger.CorrelationIDFromContext(r.Context()),
		},
	})
}
