package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one distinct product in a cart together with its quantity.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price * quantity for the line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is the state of one shopping session. ItemCount and Total are derived
// from Items and are recomputed by Reduce after every change; nothing else
// writes them.
type Cart struct {
	SessionID string          `json:"session_id"`
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) Cart {
	return Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
		Total:     decimal.Zero,
	}
}

// FindItemIndex returns the index of the line for productID, or -1.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the quantity held for productID, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	if i := c.FindItemIndex(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart's item list so the copy can be
// handed out without exposing the owner's backing array.
func (c Cart) Clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

// recompute sets ItemCount and Total with a full pass over Items.
func (c *Cart) recompute() {
	count := 0
	total := decimal.Zero
	for _, item := range c.Items {
		count += item.Quantity
		total = total.Add(item.Subtotal())
	}
	c.ItemCount = count
	c.Total = total
}
