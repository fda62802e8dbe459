package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitConfig describes one named sliding window.
type RateLimitConfig struct {
	Key    string
	Limit  int
	Window time.Duration
}

// SumoAPIRateLimit is the shared budget for sumo-api.com requests.
var SumoAPIRateLimit = RateLimitConfig{
	Key:    "sumo-api",
	Limit:  5,
	Window: time.Second,
}

// slidingWindow trims the sorted set to the window, counts what is
// left and claims a slot when the limit allows. Replies with
// {allowed, remaining}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local cutoff = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', cutoff)
local used = redis.call('ZCARD', key)
if used >= limit then
	return {0, 0}
end
redis.call('ZADD', key, now, now)
redis.call('PEXPIRE', key, ttl)
return {1, limit - used - 1}
`)

// RateLimiter coordinates a request budget across processes through
// Redis. With Redis disabled every request is allowed; the in-process
// limiter on the API client still applies.
type RateLimiter struct {
	client *Client
	prefix string
}

// NewRateLimiter returns a limiter whose windows live under prefix.
func NewRateLimiter(client *Client, prefix string) *RateLimiter {
	return &RateLimiter{client: client, prefix: prefix}
}

// Allow claims a slot in the window when one is free. It reports
// whether the request may proceed and how many slots remain.
func (r *RateLimiter) Allow(ctx context.Context, cfg RateLimitConfig) (bool, int, error) {
	if !r.client.Enabled() {
		return true, cfg.Limit, nil
	}

	key := fmt.Sprintf("%s:ratelimit:%s", r.prefix, cfg.Key)
	now := time.Now().UnixMilli()

	res, err := slidingWindow.Run(ctx, r.client.Redis(), []string{key},
		now,
		now-cfg.Window.Milliseconds(),
		cfg.Limit,
		cfg.Window.Milliseconds(),
	).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script: %w", err)
	}

	return res[0].(int64) == 1, int(res[1].(int64)), nil
}

const retryInterval = 100 * time.Millisecond

// Wait blocks until Allow grants a slot or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context, cfg RateLimitConfig) error {
	for {
		allowed, _, err := r.Allow(ctx, cfg)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
