package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewSnapshot is the slice of memory state captured by a log entry:
// the values that resulted from the review it records. It exists for
// analytics and for replaying a card's history; the authoritative current
// state is always CardProgress.
type ReviewSnapshot struct {
	Stage         Stage   `json:"stage"`
	Stability     float64 `json:"stability"`
	Difficulty    float64 `json:"difficulty"`
	ScheduledDays float64 `json:"scheduled_days"`
}

// ReviewLog is an immutable record of a single card review. Entries are
// append-only: they are never updated or deleted, which lets daily counters
// and statistics be derived from the log instead of from mutable counters.
type ReviewLog struct {
	ID         int64          `json:"id"`
	UserID     uuid.UUID      `json:"user_id"`
	CardID     string         `json:"card_id"`
	Rating     Rating         `json:"rating"`
	ReviewedAt time.Time      `json:"reviewed_at"`
	Result     ReviewSnapshot `json:"result"`
}

// NewReviewLog builds a log entry from a review and the progress it produced.
func NewReviewLog(progress *CardProgress, rating Rating, reviewedAt time.Time) (*ReviewLog, error) {
	if progress.UserID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if progress.CardID == "" {
		return nil, ErrEmptyCardID
	}
	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}
	return &ReviewLog{
		UserID:     progress.UserID,
		CardID:     progress.CardID,
		Rating:     rating,
		ReviewedAt: reviewedAt,
		Result: ReviewSnapshot{
			Stage:         progress.Stage,
			Stability:     progress.Stability,
			Difficulty:    progress.Difficulty,
			ScheduledDays: progress.ScheduledDays,
		},
	}, nil
}
