package store

import (
	"context"
	"fmt"
)

// Dates are stored as ISO YYYY-MM-DD text on purpose: the temporal
// split compares them lexicographically and never does date arithmetic.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS basho (
		id TEXT PRIMARY KEY,
		name TEXT,
		start_date TEXT,
		end_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS rikishi (
		id INTEGER PRIMARY KEY,
		name TEXT,
		debut_date TEXT,
		birth_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS basho_rikishi (
		basho_id TEXT NOT NULL REFERENCES basho(id),
		rikishi_id INTEGER NOT NULL,
		rank TEXT,
		division TEXT NOT NULL,
		PRIMARY KEY (basho_id, rikishi_id)
	)`,
	`CREATE TABLE IF NOT EXISTS measurement (
		basho_id TEXT NOT NULL,
		rikishi_id INTEGER NOT NULL,
		height_cm DOUBLE PRECISION,
		weight_kg DOUBLE PRECISION,
		PRIMARY KEY (basho_id, rikishi_id)
	)`,
	`CREATE TABLE IF NOT EXISTS match (
		id TEXT PRIMARY KEY,
		basho_id TEXT NOT NULL REFERENCES basho(id),
		division TEXT NOT NULL,
		day INTEGER NOT NULL,
		rikishi1_id INTEGER NOT NULL,
		rikishi2_id INTEGER NOT NULL,
		winner_id INTEGER NOT NULL,
		kimarite TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_basho_day ON match (basho_id, day)`,
	`CREATE INDEX IF NOT EXISTS idx_match_division ON match (basho_id, division, day)`,
	`CREATE INDEX IF NOT EXISTS idx_measurement_rikishi ON measurement (rikishi_id)`,
}

// Bootstrap creates the schema when it does not exist yet. Every
// statement is idempotent, so running it on every start is safe.
func (s *Store) Bootstrap(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
