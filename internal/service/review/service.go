package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
)

// Service errors. Scheduler errors (srs.ErrInvalidRating,
// srs.ErrOutOfOrderReview) pass through unwrapped so callers can map them
// with errors.Is.
var (
	// ErrCardNotFound indicates the reviewed card does not exist in the
	// catalog.
	ErrCardNotFound = errors.New("review: card not found")
)

// Service drives review sessions for a user.
type Service interface {
	// NextCard returns the single card the user should study next, or nil
	// when the session is complete: the review cap is reached, nothing is
	// due, and no new card may be introduced. A nil selection is a normal
	// terminal value, not an error.
	NextCard(ctx context.Context, userID uuid.UUID, now time.Time) (*Selection, error)

	// SubmitReview records a rating for a card at the given instant and
	// returns the superseding progress. The first review of an unseen card
	// creates its progress row; level promotion is checked after every
	// review.
	//
	// Returns ErrCardNotFound for unknown cards, srs.ErrInvalidRating for
	// ratings outside 1..4, and srs.ErrOutOfOrderReview when now precedes
	// the card's recorded last review.
	SubmitReview(ctx context.Context, userID uuid.UUID, cardID string, rating domain.Rating, now time.Time) (*domain.CardProgress, error)
}
