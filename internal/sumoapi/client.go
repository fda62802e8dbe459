package sumoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wplohrmann/sumo/pkg/config"
	"github.com/wplohrmann/sumo/pkg/httputil"
	"github.com/wplohrmann/sumo/pkg/logger"
	"github.com/wplohrmann/sumo/pkg/redis"
)

// ErrNotFound marks a 404 from the API: the resource does not exist
// (yet). Callers that walk divisions and days skip on it instead of
// aborting the run.
var ErrNotFound = errors.New("resource not found")

// Client handles communication with sumo-api.com. All calls go through
// a local token bucket, and responses are cached in Redis when it is
// enabled; completed tournament data never changes so cache hits are
// the common case on re-ingestion.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	limiter    *rate.Limiter
	logger     *logger.Logger
	baseURL    string
	cacheTTL   time.Duration
}

// NewClient creates a new sumo-api.com client
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(cfg.SumoAPI.RequestsPerSec), cfg.SumoAPI.Burst),
		logger:     log.WithField("module", "sumoapi"),
		baseURL:    cfg.SumoAPI.BaseURL,
		cacheTTL:   cfg.SumoAPI.CacheTTL,
	}
}

// GetBasho fetches tournament metadata
func (c *Client) GetBasho(ctx context.Context, bashoID string) (*Basho, error) {
	var basho Basho
	path := fmt.Sprintf("/basho/%s", bashoID)
	if err := c.getJSON(ctx, path, redis.BashoKey(bashoID), c.cacheTTL, &basho); err != nil {
		return nil, err
	}
	return &basho, nil
}

// GetBanzuke fetches the ranking sheet for one division of a basho
func (c *Client) GetBanzuke(ctx context.Context, bashoID, division string) (*Banzuke, error) {
	var banzuke Banzuke
	path := fmt.Sprintf("/basho/%s/banzuke/%s", bashoID, division)
	if err := c.getJSON(ctx, path, redis.BanzukeKey(bashoID, division), c.cacheTTL, &banzuke); err != nil {
		return nil, err
	}
	return &banzuke, nil
}

// GetRikishi fetches one rikishi's profile
func (c *Client) GetRikishi(ctx context.Context, rikishiID int) (*Rikishi, error) {
	var rikishi Rikishi
	path := fmt.Sprintf("/rikishi/%d", rikishiID)
	if err := c.getJSON(ctx, path, redis.RikishiKey(rikishiID), redis.TTLDaily, &rikishi); err != nil {
		return nil, err
	}
	return &rikishi, nil
}

// GetMeasurements fetches height and weight records for a basho
func (c *Client) GetMeasurements(ctx context.Context, bashoID string) ([]Measurement, error) {
	var measurements []Measurement
	path := fmt.Sprintf("/measurements?bashoId=%s", bashoID)
	if err := c.getJSON(ctx, path, redis.MeasurementsKey(bashoID), c.cacheTTL, &measurements); err != nil {
		return nil, err
	}
	return measurements, nil
}

// GetTorikumi fetches the bout sheet for one division and day
func (c *Client) GetTorikumi(ctx context.Context, bashoID, division string, day int) (*Torikumi, error) {
	if day < 1 || day > MaxDays {
		return nil, fmt.Errorf("day %d out of range 1-%d", day, MaxDays)
	}

	var torikumi Torikumi
	path := fmt.Sprintf("/basho/%s/torikumi/%s/%d", bashoID, division, day)
	key := redis.TorikumiKey(bashoID, division, day)
	if err := c.getJSON(ctx, path, key, c.cacheTTL, &torikumi); err != nil {
		return nil, err
	}
	return &torikumi, nil
}

// getJSON resolves a path through the cache, fetching on miss.
func (c *Client) getJSON(ctx context.Context, path, cacheKey string, ttl time.Duration, dest interface{}) error {
	return c.cache.GetOrSet(ctx, cacheKey, dest, ttl, func() (interface{}, error) {
		var raw json.RawMessage
		if err := c.fetch(ctx, path, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	})
}

// fetch performs one rate-limited GET and decodes the response.
func (c *Client) fetch(ctx context.Context, path string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.httpClient.Get(ctx, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
