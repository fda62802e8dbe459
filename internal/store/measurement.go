package store

import (
	"context"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// SaveMeasurements inserts height/weight records for one basho,
// leaving existing rows untouched.
func (s *Store) SaveMeasurements(ctx context.Context, measurements []contracts.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}

	query := `
		INSERT INTO measurement (basho_id, rikishi_id, height_cm, weight_kg)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (basho_id, rikishi_id) DO NOTHING
	`

	for _, m := range measurements {
		_, err := s.pool.Exec(ctx, query, m.BashoID, m.RikishiID, m.HeightCm, m.WeightKg)
		if err != nil {
			return err
		}
	}
	return nil
}

// HasMeasurements reports whether any measurements are stored for the
// given basho.
func (s *Store) HasMeasurements(ctx context.Context, bashoID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM measurement WHERE basho_id = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, bashoID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
