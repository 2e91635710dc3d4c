package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loddgo/loddgo-api/internal/domain"
)

const keyPrefix = "loddgo:purchase:"

// RedisIdempotencyCache stores purchases as JSON under their idempotency
// key. Entries expire after ttl; the database stays the source of truth.
type RedisIdempotencyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyCache(client *redis.Client, ttl time.Duration) *RedisIdempotencyCache {
	return &RedisIdempotencyCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisIdempotencyCache) Get(ctx context.Context, key string) (domain.Purchase, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Purchase{}, false, nil
		}

		return domain.Purchase{}, false, fmt.Errorf("c.client.Get -> %w", err)
	}

	var purchase domain.Purchase
	if err = json.Unmarshal(data, &purchase); err != nil {
		return domain.Purchase{}, false, fmt.Errorf("json.Unmarshal -> %w", err)
	}
	purchase.Order.IdempotencyKey = &key

	return purchase, true, nil
}

func (c *RedisIdempotencyCache) Set(ctx context.Context, key string, purchase domain.Purchase) error {
	data, err := json.Marshal(purchase)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("c.client.Set -> %w", err)
	}

	return nil
}
