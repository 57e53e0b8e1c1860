// Package cache is a small redis layer in front of the public menu reads.
// A nil client disables caching entirely, which is how tests and local
// setups without redis run.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(addr, password string, ttl time.Duration) *MenuCache {
	if addr == "" {
		return &MenuCache{TTL: ttl}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &MenuCache{Client: client, TTL: ttl}
}

func menuKey(locale, categorySlug string) string {
	return "menu:" + locale + ":" + categorySlug
}

func (c *MenuCache) Get(ctx context.Context, locale, categorySlug string, dest any) (bool, error) {
	if c.Client == nil {
		return false, nil
	}
	raw, err := c.Client.Get(ctx, menuKey(locale, categorySlug)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MenuCache) Set(ctx context.Context, locale, categorySlug string, value any) error {
	if c.Client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, menuKey(locale, categorySlug), raw, c.TTL).Err()
}

// Invalidate drops every cached menu view. Called after any catalog write.
func (c *MenuCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return nil
	}
	iter := c.Client.Scan(ctx, 0, "menu:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *MenuCache) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
