package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jovalentine/Digi-market/internal/domain"
	"github.com/Jovalentine/Digi-market/internal/repository"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
)

var _ repository.CartRepository = (*CartRepository)(nil)

var (
	uiKit   = domain.Product{ID: "1", Name: "Premium UI Kit", Price: decimal.NewFromInt(49)}
	toolkit = domain.Product{ID: "2", Name: "Developer Toolkit Pro", Price: decimal.NewFromInt(79)}
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour)
	return repo, mr
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart, _ := domain.ReduceAll(domain.NewCart("sess-1"),
		domain.AddItem{Product: uiKit},
		domain.AddItem{Product: uiKit},
	)
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:sess-1", string(data)))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, 2, got.ItemCount)
	assert.Equal(t, "98", got.Total.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Premium UI Kit", got.Items[0].Product.Name)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "nobody")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_InvalidJSON(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart")
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestCartRepository_Apply_CreatesAndPersists(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	c, changed, err := repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, c.Version)
	assert.False(t, c.UpdatedAt.IsZero())

	c, changed, err = repo.Apply(ctx, "sess-1", domain.AddItem{Product: toolkit})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, c.ItemCount)
	assert.Equal(t, "128", c.Total.String())
	assert.Equal(t, 2, c.Version)

	raw, err := mr.Get("cart:sess-1")
	require.NoError(t, err)
	var stored domain.Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, 2, stored.ItemCount)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(128)))
}

func TestCartRepository_Apply_SetsTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	_, _, err := repo.Apply(context.Background(), "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)

	ttl := mr.TTL("cart:sess-1")
	assert.True(t, ttl > 23*time.Hour, "expected TTL > 23h, got %v", ttl)
	assert.True(t, ttl <= 24*time.Hour, "expected TTL <= 24h, got %v", ttl)
}

func TestCartRepository_Apply_NoopWritesNothing(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	c, changed, err := repo.Apply(ctx, "sess-1", domain.SetQuantity{ProductID: "1", Quantity: 3})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, c.Items)
	assert.False(t, mr.Exists("cart:sess-1"))

	_, _, err = repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)
	before, _ := mr.Get("cart:sess-1")

	_, changed, err = repo.Apply(ctx, "sess-1", domain.SetQuantity{ProductID: "1", Quantity: 0})
	require.NoError(t, err)
	assert.False(t, changed)
	after, _ := mr.Get("cart:sess-1")
	assert.Equal(t, before, after)
}

func TestCartRepository_Apply_GuardedClear(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	read, _, err := repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)
	_, _, err = repo.Apply(ctx, "sess-1", domain.AddItem{Product: toolkit})
	require.NoError(t, err)

	got, changed, err := repo.Apply(ctx, "sess-1", domain.ClearCart{IfVersion: read.Version})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, got.ItemCount)

	stored, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2, "a stale clear must not touch the stored cart")

	_, changed, err = repo.Apply(ctx, "sess-1", domain.ClearCart{IfVersion: stored.Version})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestCartRepository_Apply_RetriesOnConflict(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()
	other := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { other.Close() })

	_, _, err := repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)

	// The first attempt sees a concurrent write and must retry on top of it.
	interfered := false
	repo.afterRead = func() {
		if interfered {
			return
		}
		interfered = true
		concurrent, _ := domain.ReduceAll(domain.NewCart("sess-1"),
			domain.AddItem{Product: uiKit},
			domain.AddItem{Product: toolkit},
		)
		data, _ := json.Marshal(concurrent)
		require.NoError(t, other.Set(ctx, "cart:sess-1", data, time.Hour).Err())
	}

	c, changed, err := repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, c.Quantity("1"))
	assert.Equal(t, 1, c.Quantity("2"))
	assert.Equal(t, 3, c.ItemCount)
}

func TestCartRepository_Apply_ConflictAfterRetries(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()
	other := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { other.Close() })

	attempts := 0
	repo.afterRead = func() {
		attempts++
		require.NoError(t, other.Set(ctx, "cart:sess-1", `{"session_id":"sess-1","items":[]}`, time.Hour).Err())
	}

	_, _, err := repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, maxRetries, attempts)
}

func TestCartRepository_Apply_ConcurrentWriters(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	const n = 4
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.Apply(ctx, "shared", domain.AddItem{Product: uiKit})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, apperrors.ErrConflict)
			}
		}()
	}
	wg.Wait()

	c, err := repo.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, succeeded, c.ItemCount)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	_, _, err := repo.Apply(ctx, "sess-1", domain.AddItem{Product: uiKit})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	assert.False(t, mr.Exists("cart:sess-1"))
}

func TestCartRepository_Delete_NonExistent(t *testing.T) {
	repo, _ := setupTestRedis(t)
	assert.NoError(t, repo.Delete(context.Background(), "nobody"))
}

func TestCartRepository_ConnectionError(t *testing.T) {
	repo, mr := setupTestRedis(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "sess-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = repo.Apply(context.Background(), "sess-1", domain.AddItem{Product: uiKit})
	require.Error(t, err)
}
