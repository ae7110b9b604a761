package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Jovalentine/Digi-market/internal/cartstore"
	"github.com/Jovalentine/Digi-market/internal/domain"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
)

type entry struct {
	store    *cartstore.Store
	lastSeen time.Time
}

// CartRepository keeps one cartstore.Store per session in process memory.
// Carts idle for longer than the TTL are evicted by Run.
type CartRepository struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	logger  *slog.Logger
	nowFunc func() time.Time

	// beforeDispatch runs between the entry lookup and the dispatch; tests
	// use it to race deletes and evictions against writes.
	beforeDispatch func()
}

// NewCartRepository creates an in-memory cart repository.
func NewCartRepository(ttl time.Duration, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger,
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

func (r *CartRepository) now() time.Time {
	return r.nowFunc()
}

// Get returns a copy of the session's cart.
func (r *CartRepository) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	if ok {
		e.lastSeen = r.now()
	}
	r.mu.Unlock()

	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	c := e.store.State()
	return &c, nil
}

// Apply dispatches actions to the session's store. A session without a
// cart only gets one when the actions change something. When the entry is
// deleted, evicted or replaced while the dispatch runs, the actions are
// replayed on the current entry so no write lands on an orphaned store.
func (r *CartRepository) Apply(_ context.Context, sessionID string, actions ...domain.Action) (*domain.Cart, bool, error) {
	for {
		r.mu.Lock()
		e, live := r.entries[sessionID]
		if !live {
			e = r.newEntry(sessionID)
		}
		e.lastSeen = r.now()
		r.mu.Unlock()

		if r.beforeDispatch != nil {
			r.beforeDispatch()
		}
		c, changed := e.store.Dispatch(actions...)

		if !live && !changed {
			return &c, false, nil
		}

		r.mu.Lock()
		current, ok := r.entries[sessionID]
		switch {
		case live && ok && current == e:
			r.mu.Unlock()
			return &c, changed, nil
		case !live && !ok:
			r.entries[sessionID] = e
			r.mu.Unlock()
			return &c, changed, nil
		}
		r.mu.Unlock()
	}
}

func (r *CartRepository) newEntry(sessionID string) *entry {
	store := cartstore.New(sessionID, cartstore.WithClock(r.nowFunc))
	store.Subscribe(func(c domain.Cart) {
		cartItems.Observe(float64(c.ItemCount))
		r.logger.Debug("cart changed",
			slog.String("session_id", c.SessionID),
			slog.Int("version", c.Version),
			slog.Int("item_count", c.ItemCount),
		)
	})
	return &entry{store: store}
}

// Delete removes the session's cart.
func (r *CartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
	return nil
}

// Len returns the number of live carts.
func (r *CartRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run evicts idle carts every interval until ctx is cancelled.
func (r *CartRepository) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.cleanup(); n > 0 {
				r.logger.Info("evicted idle carts", slog.Int("count", n))
			}
		}
	}
}

// cleanup evicts every cart whose lastSeen is older than the TTL.
func (r *CartRepository) cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
			evicted++
		}
	}
	return evicted
}
