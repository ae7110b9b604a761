package cartstore

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jovalentine/Digi-market/internal/domain"
)

var (
	uiKit   = domain.Product{ID: "1", Name: "Premium UI Kit", Price: decimal.NewFromInt(49)}
	toolkit = domain.Product{ID: "2", Name: "Developer Toolkit Pro", Price: decimal.NewFromInt(79)}
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestStore_Walkthrough(t *testing.T) {
	s := New("sess-1")

	c := s.AddItem(uiKit)
	assert.Equal(t, 1, c.ItemCount)
	assert.Equal(t, "49", c.Total.String())

	c = s.AddItem(uiKit)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "98", c.Total.String())

	c = s.AddItem(toolkit)
	assert.Equal(t, 3, c.ItemCount)
	assert.Equal(t, "177", c.Total.String())

	c = s.UpdateQuantity("1", 5)
	assert.Equal(t, 6, c.ItemCount)
	assert.Equal(t, "324", c.Total.String())

	c = s.RemoveItem("2")
	assert.Equal(t, 5, c.ItemCount)
	assert.Equal(t, "245", c.Total.String())

	c = s.ClearCart()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.ItemCount)
	assert.True(t, c.Total.IsZero())
}

func TestStore_NoopKeepsStateAndTimestamp(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New("sess-1", WithClock(fixedClock(t0)))
	s.AddItem(uiKit)
	before := s.State()

	for _, a := range []domain.Action{
		domain.SetQuantity{ProductID: "1", Quantity: 0},
		domain.SetQuantity{ProductID: "1", Quantity: -4},
		domain.SetQuantity{ProductID: "9", Quantity: 2},
		domain.RemoveItem{ProductID: "9"},
	} {
		got, changed := s.Dispatch(a)
		assert.False(t, changed, a.Name())
		assert.Equal(t, before, got, a.Name())
	}
	assert.Equal(t, before, s.State())
}

func TestStore_StampsUpdatedAtOnChange(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := New("sess-1", WithClock(fixedClock(t0)))

	assert.True(t, s.State().UpdatedAt.IsZero())
	c := s.AddItem(uiKit)
	assert.Equal(t, t0, c.UpdatedAt)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := New("sess-1")
	s.AddItem(uiKit)

	c := s.State()
	c.Items[0].Quantity = 50
	c.ItemCount = 50

	fresh := s.State()
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Equal(t, 1, fresh.ItemCount)
}

func TestStore_DispatchIsAtomic(t *testing.T) {
	s := New("sess-1")

	c, changed := s.Dispatch(
		domain.AddItem{Product: uiKit},
		domain.AddItem{Product: uiKit},
		domain.AddItem{Product: uiKit},
	)
	require.True(t, changed)
	assert.Equal(t, 3, c.ItemCount)
	assert.Equal(t, 3, c.Version)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	s := New("sess-1")

	var seen []int
	unsubscribe := s.Subscribe(func(c domain.Cart) {
		seen = append(seen, c.ItemCount)
	})

	s.AddItem(uiKit)
	s.UpdateQuantity("1", 0) // no-op, no notification
	s.AddItem(toolkit)
	unsubscribe()
	s.ClearCart()

	assert.Equal(t, []int{1, 2}, seen)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := New("sess-1")

	const workers, perWorker = 16, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			p := uiKit
			if w%2 == 1 {
				p = toolkit
			}
			for i := 0; i < perWorker; i++ {
				s.AddItem(p)
				_ = s.State()
			}
		}(w)
	}
	wg.Wait()

	c := s.State()
	assert.Equal(t, workers*perWorker, c.ItemCount)
	assert.Equal(t, workers*perWorker/2, c.Quantity("1"))
	assert.Equal(t, workers*perWorker/2, c.Quantity("2"))
	want := decimal.NewFromInt(int64(workers * perWorker / 2)).Mul(decimal.NewFromInt(49 + 79))
	assert.True(t, c.Total.Equal(want), "total %s, want %s", c.Total, want)
	assert.Equal(t, workers*perWorker, c.Version)
}
