package store

import (
	"context"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// SaveRikishi inserts a competitor master record, leaving an existing
// row untouched.
func (s *Store) SaveRikishi(ctx context.Context, rikishi contracts.Rikishi) error {
	query := `
		INSERT INTO rikishi (id, name, debut_date, birth_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query, rikishi.ID, rikishi.Name, rikishi.DebutDate, rikishi.BirthDate)
	return err
}

// RikishiExists reports whether a competitor is already stored.
func (s *Store) RikishiExists(ctx context.Context, rikishiID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM rikishi WHERE id = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, rikishiID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
