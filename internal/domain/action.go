package domain

// Action is a cart mutation. The set of actions is closed: AddItem,
// RemoveItem, SetQuantity and ClearCart.
type Action interface {
	// Name is the operation label used in logs, metrics and events.
	Name() string

	// apply returns the new item list and whether it differs from items.
	// It must not modify items.
	apply(items []LineItem) ([]LineItem, bool)
}

// Operation names reported by Action.Name.
const (
	OpAddItem     = "add_item"
	OpRemoveItem  = "remove_item"
	OpSetQuantity = "update_quantity"
	OpClearCart   = "clear_cart"
)

// AddItem increments the line for Product.ID by one, appending a new line
// with quantity 1 when the product is not in the cart yet.
type AddItem struct {
	Product Product
}

// RemoveItem drops the line for ProductID. Absent ids are a no-op.
type RemoveItem struct {
	ProductID string
}

// SetQuantity sets the line for ProductID to exactly Quantity. A quantity
// of zero or less leaves the cart unchanged; it does not remove the line.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart empties the cart. A non-zero IfVersion makes the clear
// conditional: it only applies while the cart is still at that version, so
// a checkout never empties lines it did not read.
type ClearCart struct {
	IfVersion int
}

func (AddItem) Name() string     { return OpAddItem }
func (RemoveItem) Name() string  { return OpRemoveItem }
func (SetQuantity) Name() string { return OpSetQuantity }
func (ClearCart) Name() string   { return OpClearCart }

func (a AddItem) apply(items []LineItem) ([]LineItem, bool) {
	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	for i := range out {
		if out[i].Product.ID == a.Product.ID {
			out[i].Quantity++
			return out, true
		}
	}
	return append(out, LineItem{Product: a.Product, Quantity: 1}), true
}

func (a RemoveItem) apply(items []LineItem) ([]LineItem, bool) {
	idx := indexOf(items, a.ProductID)
	if idx < 0 {
		return items, false
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out, true
}

func (a SetQuantity) apply(items []LineItem) ([]LineItem, bool) {
	if a.Quantity <= 0 {
		return items, false
	}
	idx := indexOf(items, a.ProductID)
	if idx < 0 || items[idx].Quantity == a.Quantity {
		return items, false
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	out[idx].Quantity = a.Quantity
	return out, true
}

func (a ClearCart) stale(c Cart) bool {
	return a.IfVersion != 0 && a.IfVersion != c.Version
}

func (ClearCart) apply(items []LineItem) ([]LineItem, bool) {
	if len(items) == 0 {
		return items, false
	}
	return []LineItem{}, true
}

func indexOf(items []LineItem, productID string) int {
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Reduce applies a to c and returns the resulting cart and whether anything
// changed. On change the derived fields are recomputed from scratch and the
// version is bumped; on a no-op c is returned as is. Reduce never writes to
// c's backing array.
func Reduce(c Cart, a Action) (Cart, bool) {
	if cc, ok := a.(ClearCart); ok && cc.stale(c) {
		return c, false
	}
	items, changed := a.apply(c.Items)
	if !changed {
		return c, false
	}
	c.Items = items
	c.recompute()
	c.Version++
	return c, true
}

// ReduceAll folds actions over c in order. The result reports whether any
// of them changed the cart.
func ReduceAll(c Cart, actions ...Action) (Cart, bool) {
	changed := false
	for _, a := range actions {
		var ok bool
		c, ok = Reduce(c, a)
		changed = changed || ok
	}
	return c, changed
}
