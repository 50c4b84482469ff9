package dashboard

import (
	"context"
	"time"

	"github.com/dapursupply/erp-backend/pkg/redis"
)

// redisCache adapts the shared Redis client to the Cache interface. All
// failures are treated as misses; the dashboard must keep working without
// the cache.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache wraps the Redis client as a dashboard cache. Returns nil
// when no client is configured so callers can pass the result straight to
// NewService.
func NewRedisCache(client *redis.Client) Cache {
	if client == nil {
		return nil
	}
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	_ = c.client.Set(ctx, key, value, ttl)
}
