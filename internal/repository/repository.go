package repository

import (
	"context"

	"github.com/Jovalentine/Digi-market/internal/domain"
)

// CartRepository owns the carts of all sessions. Each Apply is one atomic
// read-reduce-write for its session.
type CartRepository interface {
	// Get retrieves the cart for a session. Returns ErrNotFound when the
	// session has no cart yet.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Apply folds actions into the session's cart, creating it if needed,
	// and returns the resulting cart and whether it changed. A no-op writes
	// nothing.
	Apply(ctx context.Context, sessionID string, actions ...domain.Action) (*domain.Cart, bool, error)

	// Delete removes the session's cart.
	Delete(ctx context.Context, sessionID string) error
}
