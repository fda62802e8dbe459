// Package httputil provides the outbound HTTP client used for all
// sumo-api traffic. The client retries transient failures with
// exponential backoff and can defer to a shared Redis rate limit
// window before each request.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wplohrmann/sumo/pkg/config"
	"github.com/wplohrmann/sumo/pkg/logger"
	"github.com/wplohrmann/sumo/pkg/redis"
)

const defaultTimeout = 30 * time.Second

// RetryConfig controls the attempt loop in Client.Get.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Enabled      bool
}

func defaultRetry() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Enabled:      true,
	}
}

// Client wraps http.Client with request logging, retries and an
// optional cross-process rate limiter.
type Client struct {
	hc          *http.Client
	log         *logger.Logger
	retry       RetryConfig
	limiter     *redis.RateLimiter
	limiterConf *redis.RateLimitConfig
}

// New returns a client with the default timeout and retry policy.
func New(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		hc:    &http.Client{Timeout: defaultTimeout},
		log:   log,
		retry: defaultRetry(),
	}
}

// NewWithTimeout returns a client whose requests time out after d.
func NewWithTimeout(cfg *config.Config, log *logger.Logger, d time.Duration) *Client {
	c := New(cfg, log)
	c.hc.Timeout = d
	return c
}

// WithRetry overrides the retry count and initial backoff delay.
func (c *Client) WithRetry(maxRetries int, initialDelay time.Duration) *Client {
	c.retry.MaxRetries = maxRetries
	c.retry.InitialDelay = initialDelay
	c.retry.Enabled = true
	return c
}

// DisableRetry turns the attempt loop off; each request is sent
// exactly once.
func (c *Client) DisableRetry() *Client {
	c.retry.Enabled = false
	return c
}

// WithRateLimiter makes every request wait for a slot in the shared
// window before it is sent.
func (c *Client) WithRateLimiter(limiter *redis.RateLimiter, conf redis.RateLimitConfig) *Client {
	c.limiter = limiter
	c.limiterConf = &conf
	return c
}

// Get issues a GET request to url. The caller owns the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build GET %s: %w", url, err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil && c.limiterConf != nil {
		if err := c.limiter.Wait(req.Context(), *c.limiterConf); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	log := c.log.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	log.Debug("http request")

	start := time.Now()
	resp, err := c.send(req)
	if err != nil {
		log.WithError(err).WithField("duration", time.Since(start)).Error("http request failed")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("http response")
	return resp, nil
}

// send runs the attempt loop. Responses with retryable status codes
// are closed and retried like transport errors until the budget is
// spent; the final response is returned as is, whatever its status.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	attempts := 1
	if c.retry.Enabled {
		attempts += c.retry.MaxRetries
	}

	delay := c.retry.InitialDelay
	for attempt := 1; ; attempt++ {
		resp, err := c.hc.Do(req)
		if err == nil && !IsRetryableError(resp.StatusCode) {
			return resp, nil
		}
		if attempt == attempts {
			return resp, err
		}
		if err == nil {
			resp.Body.Close()
		}

		c.log.WithFields(map[string]interface{}{
			"url":     req.URL.String(),
			"attempt": attempt,
			"delay":   delay,
		}).Warn("retrying http request")

		time.Sleep(delay)
		delay *= 2
		if delay > c.retry.MaxDelay {
			delay = c.retry.MaxDelay
		}
	}
}

// IsRetryableError reports whether a status code is worth another
// attempt: any 5xx, plus 429.
func IsRetryableError(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
