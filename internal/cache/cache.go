package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	KeyProducts   = "products:all"
	KeyCategories = "categories:all"
)

// Cache is a read-through cache for the unpaginated list endpoints. A
// nil *Cache is valid and disables caching entirely.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(redisURL string) *Cache {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Println("invalid REDIS_URL, cache disabled:", err)
		return nil
	}

	return &Cache{
		rdb: redis.NewClient(opts),
		ttl: 5 * time.Minute,
	}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("cache get failed:", err)
		}
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Println("cache set failed:", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache invalidate failed:", err)
	}
}
