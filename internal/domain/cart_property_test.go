package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

var propertyCatalog = []Product{
	testProduct("1", "49"),
	testProduct("2", "79"),
	testProduct("3", "129"),
	testProduct("4", "59"),
	testProduct("5", "0.99"),
}

func actionGen() *rapid.Generator[Action] {
	productGen := rapid.SampledFrom(propertyCatalog)
	idGen := rapid.SampledFrom([]string{"1", "2", "3", "4", "5", "unknown"})

	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) Action {
			return AddItem{Product: productGen.Draw(t, "product")}
		}),
		rapid.Custom(func(t *rapid.T) Action {
			return RemoveItem{ProductID: idGen.Draw(t, "id")}
		}),
		rapid.Custom(func(t *rapid.T) Action {
			return SetQuantity{
				ProductID: idGen.Draw(t, "id"),
				Quantity:  rapid.IntRange(-3, 20).Draw(t, "qty"),
			}
		}),
		rapid.Just[Action](ClearCart{}),
	)
}

func checkInvariants(t *rapid.T, c Cart) {
	count := 0
	total := decimal.Zero
	seen := make(map[string]bool, len(c.Items))
	for _, item := range c.Items {
		if item.Quantity <= 0 {
			t.Fatalf("line %s has quantity %d", item.Product.ID, item.Quantity)
		}
		if seen[item.Product.ID] {
			t.Fatalf("product %s appears twice", item.Product.ID)
		}
		seen[item.Product.ID] = true
		count += item.Quantity
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if c.ItemCount != count {
		t.Fatalf("item count %d, want %d", c.ItemCount, count)
	}
	if !c.Total.Equal(total) {
		t.Fatalf("total %s, want %s", c.Total, total)
	}
}

func TestReduce_InvariantsHoldOverRandomSequences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		actions := rapid.SliceOfN(actionGen(), 0, 60).Draw(t, "actions")

		c := NewCart("prop")
		for _, a := range actions {
			before := c.Clone()
			next, changed := Reduce(c, a)
			checkInvariants(t, next)

			if !changed && next.Version != before.Version {
				t.Fatalf("%s: version bumped on a no-op", a.Name())
			}
			if changed && next.Version != before.Version+1 {
				t.Fatalf("%s: version %d after %d", a.Name(), next.Version, before.Version)
			}
			c = next
		}
	})
}

func TestReduce_NonPositiveSetQuantityNeverChangesCart(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		setup := rapid.SliceOfN(actionGen(), 0, 20).Draw(t, "setup")
		c, _ := ReduceAll(NewCart("prop"), setup...)

		id := rapid.SampledFrom([]string{"1", "2", "3", "unknown"}).Draw(t, "id")
		qty := rapid.IntRange(-50, 0).Draw(t, "qty")

		next, changed := Reduce(c, SetQuantity{ProductID: id, Quantity: qty})
		if changed {
			t.Fatalf("set %s to %d reported a change", id, qty)
		}
		if next.Version != c.Version || next.ItemCount != c.ItemCount || !next.Total.Equal(c.Total) {
			t.Fatalf("set %s to %d altered the cart", id, qty)
		}
	})
}

func TestReduce_AddThenRemoveDropsLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		setup := rapid.SliceOfN(actionGen(), 0, 20).Draw(t, "setup")
		c, _ := ReduceAll(NewCart("prop"), setup...)
		p := rapid.SampledFrom(propertyCatalog).Draw(t, "product")

		c, _ = ReduceAll(c, AddItem{Product: p}, RemoveItem{ProductID: p.ID})

		if c.FindItemIndex(p.ID) >= 0 {
			t.Fatalf("product %s still in cart after removal", p.ID)
		}
		checkInvariants(t, c)
	})
}
