package memory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cartItems observes the item count of in-memory carts after every change.
var cartItems = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "storefront_memory_cart_items",
	Help:    "Item count of in-memory carts after each change.",
	Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
})
