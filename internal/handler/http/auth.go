package http

import (
	"log/slog"
	"net/http"

	"github.com/Jovalentine/Digi-market/internal/service"
	"github.com/Jovalentine/Digi-market/pkg/httputil"
	"github.com/Jovalentine/Digi-market/pkg/middleware"
)

// AuthHandler handles the mock sign-in endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := httputil.DecodeJSON(w, r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess, err := h.service.Login(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, sess)
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := httputil.DecodeJSON(w, r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess, err := h.service.Signup(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, sess)
}

// Logout handles POST /api/v1/auth/logout. Tokens are not tracked, so the
// client simply drops its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := middleware.IdentityFromContext(r.Context()); id != nil {
		h.logger.InfoContext(r.Context(), "user logged out", slog.String("user_id", id.UserID))
	}
	w.WriteHeader(http.StatusNoContent)
}
