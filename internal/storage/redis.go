package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

const menuCacheKey = "menu:list"

// MenuCache holds a JSON snapshot of the full menu so that the hot
// GET /api/menu path does not hit Postgres on every request.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) Get(ctx context.Context) ([]domain.MenuItem, error) {
	payload, err := c.Client.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *MenuCache) Set(ctx context.Context, items []domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, menuCacheKey, payload, c.TTL).Err()
}

func (c *MenuCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, menuCacheKey).Err()
}
