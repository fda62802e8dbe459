// Package redis wraps go-redis with the caching and rate limiting
// helpers the collector uses. Redis is optional: with REDIS_ENABLED
// unset every helper degrades to a no-op so the application still
// runs, just without a cache.
package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wplohrmann/sumo/pkg/config"
)

const connectTimeout = 5 * time.Second

// Client pairs the go-redis client with the enabled flag from config.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// New connects to Redis when cfg.Redis.Enabled is set. Otherwise it
// returns a disabled client whose helpers all no-op.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{rdb: rdb, enabled: true}, nil
}

// Close releases the connection. Safe on a disabled client.
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Enabled reports whether a Redis connection is live.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Redis exposes the underlying client. Nil when disabled; callers
// must check Enabled first.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
