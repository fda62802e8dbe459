// Package config loads application settings from the environment,
// reading an optional .env file first.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Environment
// variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	Database DatabaseConfig
	Redis    RedisConfig
	SumoAPI  SumoAPIConfig
	Sync     SyncConfig
	Eval     EvalConfig

	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	URL string

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration. Disabled means every cache
// and rate-limit helper degrades to a no-op.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// SumoAPIConfig holds sumo-api.com client configuration.
type SumoAPIConfig struct {
	BaseURL        string
	RequestsPerSec float64
	Burst          int
	CacheTTL       time.Duration
}

// SyncConfig holds the scheduled basho sync configuration.
type SyncConfig struct {
	Schedule string // cron expression, with seconds
}

// EvalConfig holds evaluation defaults, overridable per run via flags.
type EvalConfig struct {
	SplitDate string
	KValues   []float64
}

// Load reads configuration from environment variables, loading a .env
// file first when one is present.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		SumoAPI: SumoAPIConfig{
			BaseURL:        getEnv("SUMO_API_BASE_URL", "https://www.sumo-api.com/api"),
			RequestsPerSec: getEnvAsFloat("SUMO_API_RATE_LIMIT", 5.0),
			Burst:          getEnvAsInt("SUMO_API_BURST", 1),
			CacheTTL:       getEnvAsDuration("SUMO_API_CACHE_TTL", "720h"),
		},

		Sync: SyncConfig{
			Schedule: getEnv("SYNC_SCHEDULE", "0 0 6 * * *"),
		},

		Eval: EvalConfig{
			SplitDate: getEnv("SPLIT_DATE", "2023-01-01"),
			KValues:   getEnvAsFloatSlice("ELO_K_VALUES", "8,16,32,64,128,256,512"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.Env {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if _, err := time.Parse("2006-01-02", c.Eval.SplitDate); err != nil {
		return fmt.Errorf("SPLIT_DATE must be a YYYY-MM-DD date: %w", err)
	}
	return nil
}

// loadEnvFile loads the first .env found: the working directory, next
// to the executable, or one directory above the executable.
func loadEnvFile() {
	candidates := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, ".env"),
			filepath.Join(dir, "..", ".env"),
		)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// Lookup helpers. Each falls back to the given default when the
// variable is unset, empty or unparseable.

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func getEnvAsFloatSlice(key, fallback string) []float64 {
	vals, err := parseFloatSlice(getEnv(key, fallback))
	if err != nil {
		vals, _ = parseFloatSlice(fallback)
	}
	return vals
}

func parseFloatSlice(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
