package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL persistence layer for tournament data. It
// also serves as the evaluation engine's match source.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store on an existing connection pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
