package store

import (
	"context"
	"database/sql"

	"github.com/readquill/readquill-api/internal/domain"
)

// CardStore defines persistence for the shared learning catalog.
type CardStore interface {
	// CreateMultiple saves a batch of catalog cards. Run it inside
	// RunInTransaction via WithTx so the batch is atomic.
	// Returns ErrDuplicate if any card ID already exists.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its identifier.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id string) (*domain.Card, error)

	// ListAtOrBelowLevel returns all cards whose level does not exceed the
	// given level, ordered by level then card ID. This is the candidate set
	// for new-card selection.
	ListAtOrBelowLevel(ctx context.Context, level int) ([]*domain.Card, error)

	// CountAtLevel returns the number of catalog cards at exactly the given
	// level. Used by level promotion and the levels endpoint.
	CountAtLevel(ctx context.Context, level int) (int, error)

	// ListWithoutAudio returns cards missing a pronunciation audio URL.
	ListWithoutAudio(ctx context.Context) ([]*domain.Card, error)

	// SetAudioURL records the generated pronunciation audio for a card.
	// Returns ErrCardNotFound if the card does not exist.
	SetAudioURL(ctx context.Context, id, url string) error

	// WithTx returns a CardStore bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
