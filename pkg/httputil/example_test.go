package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/wplohrmann/sumo/pkg/config"
	"github.com/wplohrmann/sumo/pkg/httputil"
	"github.com/wplohrmann/sumo/pkg/logger"
)

func Example() {
	cfg := &config.Config{Env: "production", LogLevel: "info"}
	log := logger.New(cfg)

	client := httputil.New(cfg, log)

	resp, err := client.Get(context.Background(), "https://www.sumo-api.com/api/rikishi/45")
	if err != nil {
		fmt.Printf("request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("status: %d\n", resp.StatusCode)
}

func Example_tuned() {
	cfg := &config.Config{Env: "production", LogLevel: "info"}
	log := logger.New(cfg)

	// Short timeout, patient retries.
	client := httputil.NewWithTimeout(cfg, log, 5*time.Second).
		WithRetry(5, 2*time.Second)

	resp, err := client.Get(context.Background(), "https://www.sumo-api.com/api/basho/202301")
	if err != nil {
		fmt.Printf("request failed after retries: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("ok")
}
