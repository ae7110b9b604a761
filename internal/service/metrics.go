package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for CartOperationsTotal.
const (
	outcomeChanged = "changed"
	outcomeNoop    = "noop"
	outcomeError   = "error"
)

var (
	// CartOperationsTotal counts cart operations by action and whether they
	// changed the cart.
	CartOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Total number of cart operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// OrdersPlacedTotal counts completed checkouts.
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of orders placed.",
	})
)
