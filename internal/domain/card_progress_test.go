package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p, err := NewCardProgress(userID, "vowel_a", now)
	require.NoError(t, err)
	assert.Equal(t, StageNew, p.Stage)
	assert.Equal(t, now, p.Due, "a fresh card is due immediately")
	assert.False(t, p.Reviewed())
	assert.False(t, p.Mastered())

	_, err = NewCardProgress(uuid.Nil, "vowel_a", now)
	assert.ErrorIs(t, err, ErrEmptyUserID)

	_, err = NewCardProgress(userID, "", now)
	assert.ErrorIs(t, err, ErrEmptyCardID)
}

func TestCardProgressValidateReviewedInvariants(t *testing.T) {
	t.Parallel()

	base := CardProgress{
		UserID:     uuid.New(),
		CardID:     "vowel_a",
		Stage:      StageReview,
		Reps:       3,
		Stability:  4.2,
		Difficulty: 5.0,
	}
	assert.NoError(t, base.Validate())

	noStability := base
	noStability.Stability = 0
	assert.ErrorIs(t, noStability.Validate(), ErrInvalidStability)

	badDifficulty := base
	badDifficulty.Difficulty = 11
	assert.ErrorIs(t, badDifficulty.Validate(), ErrInvalidDifficulty)

	// Unreviewed state carries zero memory values and that is fine.
	unreviewed := CardProgress{UserID: uuid.New(), CardID: "vowel_a", Stage: StageNew}
	assert.NoError(t, unreviewed.Validate())
}

func TestCardProgressClone(t *testing.T) {
	t.Parallel()

	masteredAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	original := &CardProgress{
		UserID:           uuid.New(),
		CardID:           "vowel_a",
		Stage:            StageReview,
		Reps:             5,
		Stability:        8.3,
		Difficulty:       4.0,
		HighestStability: 8.3,
		MasteredAt:       &masteredAt,
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Stability = 1.0
	*clone.MasteredAt = clone.MasteredAt.Add(time.Hour)
	assert.Equal(t, 8.3, original.Stability)
	assert.Equal(t, masteredAt, *original.MasteredAt, "clone must not share the mastered_at pointer")
}

func TestNewReviewLog(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	progress := &CardProgress{
		UserID:        uuid.New(),
		CardID:        "vowel_a",
		Stage:         StageLearning,
		Stability:     2.3065,
		Difficulty:    4.8,
		ScheduledDays: 1.0 / 1440.0,
		Reps:          1,
	}

	entry, err := NewReviewLog(progress, RatingGood, now)
	require.NoError(t, err)
	assert.Equal(t, progress.UserID, entry.UserID)
	assert.Equal(t, "vowel_a", entry.CardID)
	assert.Equal(t, RatingGood, entry.Rating)
	assert.Equal(t, now, entry.ReviewedAt)
	assert.Equal(t, StageLearning, entry.Result.Stage)
	assert.Equal(t, progress.Stability, entry.Result.Stability)

	_, err = NewReviewLog(progress, Rating(0), now)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReviewLog(&CardProgress{CardID: "x"}, RatingGood, now)
	assert.ErrorIs(t, err, ErrEmptyUserID)
}
