package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jovalentine/Digi-market/internal/domain"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
)

const (
	keyPrefix  = "cart:"
	maxRetries = 5
)

// CartRepository stores each session's cart as a JSON document. Apply runs
// as a WATCH/MULTI transaction so concurrent writers to one session retry
// instead of overwriting each other.
type CartRepository struct {
	client  *redis.Client
	ttl     time.Duration
	nowFunc func() time.Time

	// afterRead runs between the watched read and the write; tests use it
	// to provoke conflicts.
	afterRead func()
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client:  client,
		ttl:     ttl,
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Get retrieves the session's cart from Redis.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}
	return decode(data)
}

// Apply reads, reduces and writes the session's cart in one optimistic
// transaction, retrying when another writer touched the key in between.
func (r *CartRepository) Apply(ctx context.Context, sessionID string, actions ...domain.Action) (*domain.Cart, bool, error) {
	key := keyPrefix + sessionID

	var (
		result  domain.Cart
		changed bool
	)
	txf := func(tx *redis.Tx) error {
		current := domain.NewCart(sessionID)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get cart: %w", err)
		default:
			c, err := decode(data)
			if err != nil {
				return err
			}
			current = *c
		}

		if r.afterRead != nil {
			r.afterRead()
		}

		result, changed = domain.ReduceAll(current, actions...)
		if !changed {
			return nil
		}
		result.UpdatedAt = r.nowFunc()

		out, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal cart: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &result, changed, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, false, err
		}
	}
	return nil, false, apperrors.Conflict(fmt.Sprintf("cart %s changed concurrently, retries exhausted", sessionID))
}

// Delete removes the session's cart from Redis.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

func decode(data []byte) (*domain.Cart, error) {
	var c domain.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []domain.LineItem{}
	}
	return &c, nil
}
