package sumoapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wplohrmann/sumo/pkg/config"
	"github.com/wplohrmann/sumo/pkg/httputil"
	"github.com/wplohrmann/sumo/pkg/logger"
	"github.com/wplohrmann/sumo/pkg/redis"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
		SumoAPI: config.SumoAPIConfig{
			BaseURL:        server.URL,
			RequestsPerSec: 1000,
			Burst:          1000,
			CacheTTL:       time.Hour,
		},
	}
	log := logger.New(cfg)

	redisClient, err := redis.New(cfg) // disabled, cache passes through
	require.NoError(t, err)
	cache := redis.NewCache(redisClient, "sumo")

	httpClient := httputil.New(cfg, log).DisableRetry()
	return NewClient(cfg, httpClient, cache, log)
}

func TestGetBasho(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/basho/202301", r.URL.Path)
		w.Write([]byte(`{
			"date": "202301",
			"location": "Tokyo, Ryogoku Kokugikan",
			"startDate": "2023-01-08T00:00:00Z",
			"endDate": "2023-01-22T00:00:00Z"
		}`))
	}))

	ctx := context.Background()

	basho, err := client.GetBasho(ctx, "202301")
	require.NoError(t, err)

	assert.Equal(t, "202301", basho.Date)
	assert.Equal(t, "Tokyo, Ryogoku Kokugikan", basho.Location)
	assert.Equal(t, "2023-01-08T00:00:00Z", basho.StartDate)
	assert.Equal(t, "2023-01-22T00:00:00Z", basho.EndDate)
}

func TestGetBanzuke(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/basho/202301/banzuke/Makuuchi", r.URL.Path)
		w.Write([]byte(`{
			"bashoId": "202301",
			"division": "Makuuchi",
			"east": [
				{"rikishiID": 45, "shikonaEn": "Terunofuji", "rank": "Yokozuna 1 East"},
				{"rikishiID": 12, "shikonaEn": "Wakatakakage", "rank": "Sekiwake 1 East"}
			],
			"west": [
				{"rikishiID": 22, "shikonaEn": "Takakeisho", "rank": "Ozeki 1 West"}
			]
		}`))
	}))

	ctx := context.Background()

	banzuke, err := client.GetBanzuke(ctx, "202301", "Makuuchi")
	require.NoError(t, err)

	require.Len(t, banzuke.East, 2)
	require.Len(t, banzuke.West, 1)
	assert.Equal(t, 45, banzuke.East[0].RikishiID)
	assert.Equal(t, "Terunofuji", banzuke.East[0].ShikonaEn)
	assert.Equal(t, "Yokozuna 1 East", banzuke.East[0].Rank)
	assert.Equal(t, 22, banzuke.West[0].RikishiID)
}

func TestGetRikishi(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rikishi/45", r.URL.Path)
		w.Write([]byte(`{
			"id": 45,
			"shikonaEn": "Terunofuji",
			"height": 192,
			"weight": 183,
			"birthDate": "1991-11-29T00:00:00Z",
			"debut": "201101"
		}`))
	}))

	ctx := context.Background()

	rikishi, err := client.GetRikishi(ctx, 45)
	require.NoError(t, err)

	assert.Equal(t, 45, rikishi.ID)
	assert.Equal(t, "Terunofuji", rikishi.ShikonaEn)
	assert.Equal(t, 192.0, rikishi.Height)
	assert.Equal(t, "201101", rikishi.Debut)
}

func TestGetMeasurements(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/measurements", r.URL.Path)
		assert.Equal(t, "202301", r.URL.Query().Get("bashoId"))
		w.Write([]byte(`[
			{"bashoId": "202301", "rikishiId": 45, "height": 192, "weight": 183.5},
			{"bashoId": "202301", "rikishiId": 22, "height": 175, "weight": 165}
		]`))
	}))

	ctx := context.Background()

	measurements, err := client.GetMeasurements(ctx, "202301")
	require.NoError(t, err)

	require.Len(t, measurements, 2)
	assert.Equal(t, 45, measurements[0].RikishiID)
	assert.Equal(t, 183.5, measurements[0].Weight)
	assert.Equal(t, 175.0, measurements[1].Height)
}

func TestGetTorikumi(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/basho/202301/torikumi/Makuuchi/12", r.URL.Path)
		w.Write([]byte(`{
			"date": "202301-12",
			"torikumi": [
				{
					"id": "202301-12-1-45-22",
					"bashoId": "202301",
					"division": "Makuuchi",
					"day": 12,
					"matchNo": 1,
					"eastId": 45,
					"westId": 22,
					"winnerId": 45,
					"winnerEn": "Terunofuji",
					"kimarite": "yorikiri"
				},
				{
					"id": "202301-12-2-12-7",
					"bashoId": "202301",
					"division": "Makuuchi",
					"day": 12,
					"matchNo": 2,
					"eastId": 12,
					"westId": 7,
					"winnerId": 0,
					"winnerEn": "",
					"kimarite": ""
				}
			]
		}`))
	}))

	ctx := context.Background()

	torikumi, err := client.GetTorikumi(ctx, "202301", "Makuuchi", 12)
	require.NoError(t, err)

	require.Len(t, torikumi.Torikumi, 2)
	bout := torikumi.Torikumi[0]
	assert.Equal(t, "202301-12-1-45-22", bout.ID)
	assert.Equal(t, 45, bout.EastID)
	assert.Equal(t, 22, bout.WestID)
	assert.Equal(t, 45, bout.WinnerID)
	assert.Equal(t, "yorikiri", bout.Kimarite)

	// Unplayed bouts come back with a zero winner.
	assert.Equal(t, 0, torikumi.Torikumi[1].WinnerID)
}

func TestGetTorikumiDayOutOfRange(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	ctx := context.Background()

	_, err := client.GetTorikumi(ctx, "202301", "Makuuchi", 16)
	require.Error(t, err)

	_, err = client.GetTorikumi(ctx, "202301", "Makuuchi", 0)
	require.Error(t, err)

	assert.False(t, called, "out of range days must not reach the API")
}

func TestGetNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	ctx := context.Background()

	_, err := client.GetBasho(ctx, "209901")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx := context.Background()

	_, err := client.GetBasho(ctx, "202301")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "unexpected status 500")
}
