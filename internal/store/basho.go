package store

import (
	"context"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// SaveBasho inserts a tournament, leaving an existing row untouched.
func (s *Store) SaveBasho(ctx context.Context, basho contracts.Basho) error {
	query := `
		INSERT INTO basho (id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query, basho.ID, basho.Name, basho.StartDate, basho.EndDate)
	return err
}

// BashoExists reports whether a tournament is already stored.
func (s *Store) BashoExists(ctx context.Context, bashoID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM basho WHERE id = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, bashoID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// LoadBashoDates returns the basho id to start date index used for
// chronological ordering and the train/test split.
func (s *Store) LoadBashoDates(ctx context.Context) (map[string]string, error) {
	query := `SELECT id, start_date FROM basho`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make(map[string]string)
	for rows.Next() {
		var id, startDate string
		if err := rows.Scan(&id, &startDate); err != nil {
			return nil, err
		}
		dates[id] = startDate
	}
	return dates, rows.Err()
}
