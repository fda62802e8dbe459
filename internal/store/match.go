package store

import (
	"context"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// SaveBouts inserts decided bouts, leaving existing rows untouched.
func (s *Store) SaveBouts(ctx context.Context, bouts []contracts.Match) error {
	if len(bouts) == 0 {
		return nil
	}

	query := `
		INSERT INTO match (id, basho_id, division, day, rikishi1_id, rikishi2_id, winner_id, kimarite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	for _, bout := range bouts {
		_, err := s.pool.Exec(ctx, query,
			bout.ID, bout.BashoID, bout.Division, bout.Day,
			bout.Rikishi1ID, bout.Rikishi2ID, bout.WinnerID, bout.Kimarite,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// HasTorikumi reports whether any bouts are stored for the given basho,
// division and day.
func (s *Store) HasTorikumi(ctx context.Context, bashoID, division string, day int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM match WHERE basho_id = $1 AND division = $2 AND day = $3)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, bashoID, division, day).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// LoadMatches returns every decided bout with the measurements of both
// rikishi for that basho joined in. Bouts without a measurement on file
// carry zeros. The result is unordered; callers sort it.
func (s *Store) LoadMatches(ctx context.Context) ([]contracts.Match, error) {
	query := `
		SELECT m.id, m.basho_id, m.division, m.day,
		       m.rikishi1_id, m.rikishi2_id, m.winner_id,
		       COALESCE(m.kimarite, ''),
		       COALESCE(me1.height_cm, 0), COALESCE(me1.weight_kg, 0),
		       COALESCE(me2.height_cm, 0), COALESCE(me2.weight_kg, 0)
		FROM match m
		LEFT JOIN measurement me1
			ON me1.basho_id = m.basho_id AND me1.rikishi_id = m.rikishi1_id
		LEFT JOIN measurement me2
			ON me2.basho_id = m.basho_id AND me2.rikishi_id = m.rikishi2_id
		WHERE m.winner_id <> 0
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []contracts.Match
	for rows.Next() {
		var m contracts.Match
		if err := rows.Scan(
			&m.ID, &m.BashoID, &m.Division, &m.Day,
			&m.Rikishi1ID, &m.Rikishi2ID, &m.WinnerID, &m.Kimarite,
			&m.Rikishi1Height, &m.Rikishi1Weight,
			&m.Rikishi2Height, &m.Rikishi2Weight,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Counts summarizes stored row counts per table for status reporting.
type Counts struct {
	Bashos         int64
	Rikishi        int64
	BanzukeEntries int64
	Measurements   int64
	Matches        int64
}

// Count returns row counts across all tables.
func (s *Store) Count(ctx context.Context) (*Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM basho),
			(SELECT COUNT(*) FROM rikishi),
			(SELECT COUNT(*) FROM basho_rikishi),
			(SELECT COUNT(*) FROM measurement),
			(SELECT COUNT(*) FROM match)
	`

	var c Counts
	err := s.pool.QueryRow(ctx, query).Scan(
		&c.Bashos, &c.Rikishi, &c.BanzukeEntries, &c.Measurements, &c.Matches,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
