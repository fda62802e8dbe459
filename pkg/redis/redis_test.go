package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wplohrmann/sumo/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return c
}

func TestNewDisabled(t *testing.T) {
	c := disabledClient(t)

	assert.False(t, c.Enabled())
	assert.Nil(t, c.Redis())
	assert.NoError(t, c.Close())
}

func TestCacheDisabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	var out string
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestCacheGetOrSetDisabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")

	// Without Redis every call goes straight to fn.
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]int{"wins": 12}, nil
	}

	var out map[string]int
	require.NoError(t, cache.GetOrSet(context.Background(), "k", &out, time.Minute, fetch))
	require.NoError(t, cache.GetOrSet(context.Background(), "k", &out, time.Minute, fetch))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 12, out["wins"])
}

func TestCacheKeyPrefix(t *testing.T) {
	cache := NewCache(disabledClient(t), "sumo")
	assert.Equal(t, "sumo:cache:basho:202301", cache.key("basho:202301"))
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")

	allowed, remaining, err := limiter.Allow(context.Background(), SumoAPIRateLimit)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, SumoAPIRateLimit.Limit, remaining)

	assert.NoError(t, limiter.Wait(context.Background(), SumoAPIRateLimit))
}

func TestKeyBuilders(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{BashoKey("202301"), "basho:202301"},
		{BanzukeKey("202301", "Makuuchi"), "banzuke:202301:Makuuchi"},
		{RikishiKey(45), "rikishi:45"},
		{MeasurementsKey("202301"), "measurements:202301"},
		{TorikumiKey("202301", "Makuuchi", 12), "torikumi:202301:Makuuchi:12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}
