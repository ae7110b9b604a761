package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jovalentine/Digi-market/internal/auth"
	"github.com/Jovalentine/Digi-market/internal/domain"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
	"github.com/Jovalentine/Digi-market/pkg/logger"
)

// LoginInput holds the sign-in form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput holds the registration form.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful login or signup.
type Session struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// AuthService simulates authentication: any non-empty credentials sign in.
// The account, and with it the cart, is keyed by email.
type AuthService struct {
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{tokens: tokens, logger: logger}
}

// Login signs in with any non-empty email and password. The display name
// is the demo default.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	sess, err := s.issue(domain.NewUser("", input.Email))
	if err != nil {
		return nil, err
	}
	logger.FromContextOr(ctx, s.logger).InfoContext(ctx, "user logged in", slog.String("user_id", sess.User.ID))
	return sess, nil
}

// Signup registers with any non-empty name, email and password.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("name, email and password are required")
	}

	sess, err := s.issue(domain.NewUser(name, email))
	if err != nil {
		return nil, err
	}
	logger.FromContextOr(ctx, s.logger).InfoContext(ctx, "user signed up", slog.String("user_id", sess.User.ID))
	return sess, nil
}

// ParseToken returns the user a session token was issued to.
func (s *AuthService) ParseToken(token string) (domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.User{}, apperrors.Unauthorized("invalid or expired token")
	}
	return claims.User(), nil
}

func (s *AuthService) issue(u domain.User) (*Session, error) {
	token, expires, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issue token: %w", err))
	}
	return &Session{User: u, Token: token, ExpiresAt: expires}, nil
}
