package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
)

// ProfileStore defines persistence for user profiles.
type ProfileStore interface {
	// Create saves a new profile. Returns ErrDuplicate if one exists.
	Create(ctx context.Context, profile *domain.Profile) error

	// Get retrieves a profile by user ID.
	// Returns ErrProfileNotFound if none exists.
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// UpdateLevel sets the user's current unlocked level.
	// Returns ErrProfileNotFound if the profile does not exist.
	UpdateLevel(ctx context.Context, id uuid.UUID, level int) error

	// WithTx returns a ProfileStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
