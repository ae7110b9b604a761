package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jovalentine/Digi-market/internal/domain"
)

const issuer = "digi-market"

// Claims carries the signed-in shopper inside a session token.
type Claims struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// User rebuilds the shopper from the claims.
func (c *Claims) User() domain.User {
	return domain.User{
		ID:     c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Avatar: c.Avatar,
	}
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret  []byte
	expiry  time.Duration
	nowFunc func() time.Time
}

// NewTokenManager creates a token manager with the given secret and token
// lifetime.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		expiry:  expiry,
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Issue signs a session token for u and returns it with its expiry.
func (m *TokenManager) Issue(u domain.User) (string, time.Time, error) {
	now := m.nowFunc()
	expires := now.Add(m.expiry)
	claims := &Claims{
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies a session token and returns its claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token claims")
	}
	return claims, nil
}
