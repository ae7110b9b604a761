// Package cartstore holds the in-process owner of a single cart.
package cartstore

import (
	"sync"
	"time"

	"github.com/Jovalentine/Digi-market/internal/domain"
)

// Listener is notified after every change with the new cart state. It runs
// while the store is locked and must not call back into the store.
type Listener func(domain.Cart)

// Store is the single authoritative owner of one cart. Every mutation is a
// read-reduce-write under one mutex, so concurrent callers never interleave
// inside an operation.
type Store struct {
	mu        sync.Mutex
	state     domain.Cart
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store for the session.
func New(sessionID string, opts ...Option) *Store {
	s := &Store{
		state:     domain.NewCart(sessionID),
		listeners: make(map[int]Listener),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies actions in order as one atomic operation and returns the
// resulting state and whether anything changed.
func (s *Store) Dispatch(actions ...domain.Action) (domain.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.ReduceAll(s.state, actions...)
	if !changed {
		return s.state.Clone(), false
	}
	next.UpdatedAt = s.now()
	s.state = next

	snapshot := s.state.Clone()
	for _, l := range s.listeners {
		l(snapshot.Clone())
	}
	return snapshot, true
}

// AddItem adds one unit of p.
func (s *Store) AddItem(p domain.Product) domain.Cart {
	c, _ := s.Dispatch(domain.AddItem{Product: p})
	return c
}

// RemoveItem drops the line for productID if present.
func (s *Store) RemoveItem(productID string) domain.Cart {
	c, _ := s.Dispatch(domain.RemoveItem{ProductID: productID})
	return c
}

// UpdateQuantity sets the quantity for productID. Non-positive quantities
// and unknown ids leave the cart untouched.
func (s *Store) UpdateQuantity(productID string, quantity int) domain.Cart {
	c, _ := s.Dispatch(domain.SetQuantity{ProductID: productID, Quantity: quantity})
	return c
}

// ClearCart empties the cart.
func (s *Store) ClearCart() domain.Cart {
	c, _ := s.Dispatch(domain.ClearCart{})
	return c
}

// State returns a copy of the current cart.
func (s *Store) State() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers l for change notifications. The returned func
// removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
