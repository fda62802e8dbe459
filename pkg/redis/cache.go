package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per kind of sumo-api payload.
const (
	TTLShort   = 1 * time.Minute     // data of a running tournament
	TTLMedium  = 10 * time.Minute    // rikishi profiles
	TTLDaily   = 24 * time.Hour      // per-day torikumi
	TTLArchive = 30 * 24 * time.Hour // finished tournaments never change
)

// Cache stores JSON-encoded values under a shared key prefix.
type Cache struct {
	client *Client
	prefix string
}

// NewCache returns a cache whose keys live under prefix.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(k string) string {
	return c.prefix + ":cache:" + k
}

// Get loads key into dest. A missing key (or disabled Redis) is
// (false, nil); transport and decode errors are returned.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	data, err := c.client.Redis().Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Redis().Set(ctx, c.key(key), data, ttl).Err()
}

// Delete drops key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}
	return c.client.Redis().Del(ctx, c.key(key)).Err()
}

// GetOrSet returns the cached value for key, or produces it with fn
// and caches the result for ttl. Cache trouble never blocks the data
// path: a failed read falls through to fn and a failed write is
// dropped.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error {
	if found, err := c.Get(ctx, key, dest); err == nil && found {
		return nil
	}

	value, err := fn()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if c.client.Enabled() {
		_ = c.client.Redis().Set(ctx, c.key(key), data, ttl).Err()
	}
	return json.Unmarshal(data, dest)
}

// Key builders shared by the sumo-api client.

func BashoKey(bashoID string) string {
	return "basho:" + bashoID
}

func BanzukeKey(bashoID, division string) string {
	return "banzuke:" + bashoID + ":" + division
}

func RikishiKey(rikishiID int) string {
	return fmt.Sprintf("rikishi:%d", rikishiID)
}

func MeasurementsKey(bashoID string) string {
	return "measurements:" + bashoID
}

func TorikumiKey(bashoID, division string, day int) string {
	return fmt.Sprintf("torikumi:%s:%s:%d", bashoID, division, day)
}
