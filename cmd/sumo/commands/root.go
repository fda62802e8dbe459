package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wplohrmann/sumo/internal/ingest"
	"github.com/wplohrmann/sumo/internal/store"
	"github.com/wplohrmann/sumo/internal/sumoapi"
	"github.com/wplohrmann/sumo/pkg/config"
	"github.com/wplohrmann/sumo/pkg/database"
	"github.com/wplohrmann/sumo/pkg/httputil"
	"github.com/wplohrmann/sumo/pkg/logger"
	"github.com/wplohrmann/sumo/pkg/redis"
)

var envFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sumo",
	Short: "Sumo tournament data and match outcome models",
	Long: `Sumo match outcome prediction.

Pulls tournament data from sumo-api.com into Postgres, rates rikishi
with an online Elo model, and benchmarks outcome predictors on a
temporal train/test split.

Usage:
  go run ./cmd/sumo [command]

Examples:
  go run ./cmd/sumo ingest 202301 202303
  go run ./cmd/sumo evaluate
  go run ./cmd/sumo sync start
  go run ./cmd/sumo status`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before config (default .env)")
}

// deps bundles everything a command may need. Commands build it once
// and defer close.
type deps struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *database.DB
	redis     *redis.Client
	store     *store.Store
	collector *ingest.Collector
}

func (d *deps) close() {
	d.redis.Close()
	d.db.Close()
}

// initDeps wires config, logging, Postgres, Redis and the sumo-api
// client together, bootstrapping the schema on the way.
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	st := store.New(db.Pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := st.Bootstrap(ctx); err != nil {
		db.Close()
		return nil, err
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "sumo")

	httpClient := httputil.New(cfg, log)
	if redisClient.Enabled() {
		// Shared window across processes; the client's own token
		// bucket only throttles within one process.
		limiter := redis.NewRateLimiter(redisClient, "sumo")
		httpClient = httpClient.WithRateLimiter(limiter, redis.SumoAPIRateLimit)
	}
	client := sumoapi.NewClient(cfg, httpClient, cache, log)

	return &deps{
		cfg:       cfg,
		log:       log,
		db:        db,
		redis:     redisClient,
		store:     st,
		collector: ingest.NewCollector(client, st, log),
	}, nil
}
