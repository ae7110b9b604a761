package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Checkout pricing rules.
var (
	// FreeShippingThreshold is the cart total from which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	// FlatShippingRate is charged below FreeShippingThreshold.
	FlatShippingRate = decimal.RequireFromString("9.99")
	// TaxRate is applied to the cart total.
	TaxRate = decimal.RequireFromString("0.10")
)

// Summary holds the checkout figures derived from a cart total. It has no
// state of its own and must be rebuilt whenever the total changes.
type Summary struct {
	ItemCount    int             `json:"item_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	FreeShipping bool            `json:"free_shipping"`
	Tax          decimal.Decimal `json:"tax"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// ShippingFor returns the shipping charge for a cart total.
func ShippingFor(total decimal.Decimal) decimal.Decimal {
	if total.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingRate
}

// TaxFor returns the tax owed on a cart total.
func TaxFor(total decimal.Decimal) decimal.Decimal {
	return total.Mul(TaxRate)
}

// NewSummary derives the checkout figures for a cart total.
func NewSummary(total decimal.Decimal, itemCount int) Summary {
	shipping := ShippingFor(total)
	tax := TaxFor(total)
	return Summary{
		ItemCount:    itemCount,
		Subtotal:     total,
		Shipping:     shipping,
		FreeShipping: shipping.IsZero(),
		Tax:          tax,
		GrandTotal:   total.Add(shipping).Add(tax),
	}
}

// SummaryOf derives the checkout figures for a cart.
func SummaryOf(c *Cart) Summary {
	return NewSummary(c.Total, c.ItemCount)
}

// Customer is the contact block of the checkout form.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Order is the confirmation produced by a successful checkout. Payment is
// simulated; only the last four card digits are kept.
type Order struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Summary   Summary    `json:"summary"`
	Customer  Customer   `json:"customer"`
	CardLast4 string     `json:"card_last4"`
	PlacedAt  time.Time  `json:"placed_at"`
}
