package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
)

// ProgressStore defines persistence for per-user, per-card memory state.
// Rows are keyed by (user_id, card_id) and superseded on every review.
type ProgressStore interface {
	// Create saves the initial progress for a card the user has just been
	// introduced to. Returns ErrDuplicate if progress already exists.
	Create(ctx context.Context, progress *domain.CardProgress) error

	// Get retrieves progress without any row locking.
	// Returns ErrProgressNotFound if none exists.
	Get(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error)

	// GetForUpdate retrieves progress with SELECT ... FOR UPDATE. Use inside
	// a transaction when submitting a review so concurrent submissions for
	// the same (user, card) serialize instead of losing an update.
	// Returns ErrProgressNotFound if none exists.
	GetForUpdate(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error)

	// Update replaces an existing progress row with the superseding state.
	// Returns ErrProgressNotFound if the row does not exist.
	Update(ctx context.Context, progress *domain.CardProgress) error

	// ListByUser returns every progress row for the user, the full memory
	// state snapshot the selection policy reads.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardProgress, error)

	// CountCreatedSince counts progress rows created at or after the given
	// instant: the number of new cards introduced in that window. The daily
	// new-card counter derives from this, never from a mutable counter row.
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// CountMasteredAtLevel counts the user's mastered cards (highest
	// stability ever reached at or above the mastery bar) at exactly the
	// given catalog level.
	CountMasteredAtLevel(ctx context.Context, userID uuid.UUID, level int) (int, error)

	// WithTx returns a ProgressStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
