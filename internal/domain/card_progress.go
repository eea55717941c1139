package domain

import (
	"time"

	"github.com/google/uuid"
)

// MasteryStabilityDays is the memory stability, in days, at which a card
// counts as mastered for level progression. Mastery is permanent: it is
// keyed on the highest stability ever reached, so a later lapse never
// regresses the user's level.
const MasteryStabilityDays = 7.0

// CardProgress is the per-user, per-card memory state driving the review
// schedule. It is superseded wholesale on every review, never merged, and
// never deleted.
//
// Stability (memory durability in days) and Difficulty (intrinsic item
// hardness, 1..10) are defined once the card has been reviewed at least
// once; before that the progress carries the StageNew initial values with
// Reps == 0.
type CardProgress struct {
	UserID        uuid.UUID `json:"user_id"`
	CardID        string    `json:"card_id"`
	Stage         Stage     `json:"stage"`
	Step          int       `json:"step"`           // Position in the learning/relapse step sequence.
	Stability     float64   `json:"stability"`      // Memory durability in days.
	Difficulty    float64   `json:"difficulty"`     // Item hardness, 1..10.
	ElapsedDays   float64   `json:"elapsed_days"`   // Days between the last two reviews.
	ScheduledDays float64   `json:"scheduled_days"` // Days until the next review.
	Reps          int       `json:"reps"`           // Total reviews of this card.
	Lapses        int       `json:"lapses"`         // Total Again ratings.
	LastReviewAt  time.Time `json:"last_review_at"` // Zero before the first review.
	Due           time.Time `json:"due"`            // Next scheduled review instant.

	// Mastery tracking for level progression.
	HighestStability float64    `json:"highest_stability"`
	MasteredAt       *time.Time `json:"mastered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"` // When the card was first introduced to the user.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCardProgress creates the fixed initial memory state for a card the user
// has never reviewed. The card is due immediately.
func NewCardProgress(userID uuid.UUID, cardID string, now time.Time) (*CardProgress, error) {
	p := &CardProgress{
		UserID:    userID,
		CardID:    cardID,
		Stage:     StageNew,
		Due:       now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reviewed reports whether the card has been reviewed at least once.
func (p *CardProgress) Reviewed() bool {
	return p.Reps > 0
}

// Mastered reports whether the card has ever reached mastery stability.
func (p *CardProgress) Mastered() bool {
	return p.HighestStability >= MasteryStabilityDays
}

// Validate checks identity fields and the invariants that hold for reviewed
// and unreviewed states respectively.
func (p *CardProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.CardID == "" {
		return ErrEmptyCardID
	}
	if !p.Stage.IsValid() {
		return ErrInvalidStage
	}
	if p.Reviewed() {
		if p.Stability <= 0 {
			return ErrInvalidStability
		}
		if p.Difficulty < 1 || p.Difficulty > 10 {
			return ErrInvalidDifficulty
		}
	}
	return nil
}

// Clone returns a copy of the progress. The MasteredAt pointer is copied by
// value so the clone is independent of the original.
func (p *CardProgress) Clone() *CardProgress {
	out := *p
	if p.MasteredAt != nil {
		t := *p.MasteredAt
		out.MasteredAt = &t
	}
	return &out
}
