package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressRowColumns = []string{
	"user_id", "card_id", "stage", "step", "stability", "difficulty",
	"elapsed_days", "scheduled_days", "reps", "lapses", "last_review_at", "due",
	"highest_stability", "mastered_at", "created_at", "updated_at",
}

func TestProgressStoreGetScansNullTimes(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	userID := uuid.New()
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// A freshly introduced card has NULL last_review_at and mastered_at.
	rows := sqlmock.NewRows(progressRowColumns).AddRow(
		userID.String(), "vowel_a", "new", 0, 0.0, 0.0,
		0.0, 0.0, 0, 0, nil, created,
		0.0, nil, created, created,
	)
	// squirrel emits Eq clauses in sorted key order: card_id before user_id.
	mock.ExpectQuery("SELECT .+ FROM card_progress WHERE").
		WithArgs("vowel_a", userID).
		WillReturnRows(rows)

	s := NewProgressStore(db, nil)
	got, err := s.Get(context.Background(), userID, "vowel_a")
	require.NoError(t, err)

	assert.Equal(t, domain.StageNew, got.Stage)
	assert.True(t, got.LastReviewAt.IsZero(), "NULL last_review_at maps to the zero time")
	assert.Nil(t, got.MasteredAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressStoreGetNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT .+ FROM card_progress WHERE").
		WillReturnRows(sqlmock.NewRows(progressRowColumns))

	s := NewProgressStore(db, nil)
	_, err = s.Get(context.Background(), uuid.New(), "missing")
	assert.ErrorIs(t, err, store.ErrProgressNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressStoreGetForUpdateLocksRow(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	userID := uuid.New()
	reviewed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mastered := reviewed.Add(-time.Hour)

	rows := sqlmock.NewRows(progressRowColumns).AddRow(
		userID.String(), "vowel_a", "review", 0, 8.3, 4.2,
		1.0, 8.0, 5, 1, reviewed, reviewed.AddDate(0, 0, 8),
		8.3, mastered, reviewed.AddDate(0, 0, -30), reviewed,
	)
	mock.ExpectQuery("SELECT .+ FROM card_progress WHERE .+ FOR UPDATE").
		WithArgs("vowel_a", userID).
		WillReturnRows(rows)

	s := NewProgressStore(db, nil)
	got, err := s.GetForUpdate(context.Background(), userID, "vowel_a")
	require.NoError(t, err)

	assert.Equal(t, domain.StageReview, got.Stage)
	require.NotNil(t, got.MasteredAt)
	assert.Equal(t, mastered, got.MasteredAt.UTC())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressStoreUpdateMissingRow(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("UPDATE card_progress SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	p := &domain.CardProgress{
		UserID:     uuid.New(),
		CardID:     "vowel_a",
		Stage:      domain.StageReview,
		Reps:       1,
		Stability:  2.0,
		Difficulty: 5.0,
	}
	s := NewProgressStore(db, nil)
	err = s.Update(context.Background(), p)
	assert.ErrorIs(t, err, store.ErrProgressNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressStoreCreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewProgressStore(db, nil)
	err = s.Create(context.Background(), &domain.CardProgress{CardID: "vowel_a", Stage: domain.StageNew})
	assert.ErrorIs(t, err, store.ErrInvalidEntity, "validation must run before any SQL")
}
