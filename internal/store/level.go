package store

import (
	"context"
	"database/sql"

	"github.com/readquill/readquill-api/internal/domain"
)

// LevelStore defines persistence for the reading level catalog.
type LevelStore interface {
	// CreateMultiple saves a batch of levels. Run it inside RunInTransaction
	// via WithTx so the batch is atomic.
	CreateMultiple(ctx context.Context, levels []*domain.Level) error

	// GetByID retrieves a level by its number.
	// Returns ErrLevelNotFound if the level does not exist.
	GetByID(ctx context.Context, id int) (*domain.Level, error)

	// ListAll returns every level ordered by number.
	ListAll(ctx context.Context) ([]*domain.Level, error)

	// WithTx returns a LevelStore bound to the given transaction.
	WithTx(tx *sql.Tx) LevelStore
}
