package store

import (
	"errors"

	"voice-orders/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// Store is the persistence adapter: it owns the translation between the
// domain model and the row-oriented tables, including field casing and
// upsert semantics.
type Store struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

func NewStore(pool *pgxpool.Pool, log *logger.Logger) *Store {
	return &Store{
		pool:   pool,
		logger: log,
	}
}
