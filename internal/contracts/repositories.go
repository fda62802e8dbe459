package contracts

import "context"

// Store is the persistence boundary for tournament ingestion. Writes are
// idempotent and the existence checks let re-runs skip whatever is
// already loaded.
type Store interface {
	// Bashos.
	SaveBasho(ctx context.Context, basho Basho) error
	BashoExists(ctx context.Context, bashoID string) (bool, error)

	// Rikishi master records.
	SaveRikishi(ctx context.Context, rikishi Rikishi) error
	RikishiExists(ctx context.Context, rikishiID int) (bool, error)

	// Banzuke rank sheets.
	SaveBanzukeEntries(ctx context.Context, entries []BanzukeEntry) error
	HasBanzuke(ctx context.Context, bashoID, division string) (bool, error)

	// Per-basho measurements.
	SaveMeasurements(ctx context.Context, measurements []Measurement) error
	HasMeasurements(ctx context.Context, bashoID string) (bool, error)

	// Bouts.
	SaveBouts(ctx context.Context, bouts []Match) error
	HasTorikumi(ctx context.Context, bashoID, division string, day int) (bool, error)
}
