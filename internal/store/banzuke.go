package store

import (
	"context"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// SaveBanzukeEntries inserts one division's ranking sheet. Duplicate
// entries are ignored; a rikishi ranked in one division stays as first
// recorded.
func (s *Store) SaveBanzukeEntries(ctx context.Context, entries []contracts.BanzukeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO basho_rikishi (basho_id, rikishi_id, rank, division)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (basho_id, rikishi_id) DO NOTHING
	`

	for _, entry := range entries {
		_, err := s.pool.Exec(ctx, query, entry.BashoID, entry.RikishiID, entry.Rank, entry.Division)
		if err != nil {
			return err
		}
	}
	return nil
}

// HasBanzuke reports whether any ranking entries are stored for the
// given basho and division.
func (s *Store) HasBanzuke(ctx context.Context, bashoID, division string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM basho_rikishi WHERE basho_id = $1 AND division = $2)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, bashoID, division).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// BanzukeRikishiIDs returns the ids of every rikishi ranked anywhere on
// the stored banzuke of a basho.
func (s *Store) BanzukeRikishiIDs(ctx context.Context, bashoID string) ([]int, error) {
	query := `SELECT rikishi_id FROM basho_rikishi WHERE basho_id = $1`

	rows, err := s.pool.Query(ctx, query, bashoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
