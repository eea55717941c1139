package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
)

// ReviewLogStore defines persistence for the append-only review log.
// There are deliberately no update or delete operations.
type ReviewLogStore interface {
	// Append inserts a new log entry and fills in its assigned ID.
	Append(ctx context.Context, log *domain.ReviewLog) error

	// CountSince counts the user's reviews at or after the given instant.
	// The daily review counter derives from this on every read.
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// CountAll counts all reviews the user has ever made.
	CountAll(ctx context.Context, userID uuid.UUID) (int, error)

	// ReviewDays returns the distinct UTC days on which the user reviewed,
	// most recent first. Streak computation walks this list.
	ReviewDays(ctx context.Context, userID uuid.UUID) ([]time.Time, error)

	// WithTx returns a ReviewLogStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
