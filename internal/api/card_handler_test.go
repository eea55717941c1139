package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/api/shared"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/domain/srs"
	"github.com/readquill/readquill-api/internal/service/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockReviewService lets each test script the service responses.
type mockReviewService struct {
	nextCardFn     func(ctx context.Context, userID uuid.UUID, now time.Time) (*review.Selection, error)
	submitReviewFn func(ctx context.Context, userID uuid.UUID, cardID string, rating domain.Rating, now time.Time) (*domain.CardProgress, error)
}

func (m *mockReviewService) NextCard(ctx context.Context, userID uuid.UUID, now time.Time) (*review.Selection, error) {
	return m.nextCardFn(ctx, userID, now)
}

func (m *mockReviewService) SubmitReview(ctx context.Context, userID uuid.UUID, cardID string, rating domain.Rating, now time.Time) (*domain.CardProgress, error) {
	return m.submitReviewFn(ctx, userID, cardID, rating, now)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newCardRouter mounts the handler on the real routes with the user ID
// already injected, the way the auth middleware would.
func newCardRouter(handler *CardHandler, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/cards/next", handler.GetNextCard)
	r.Post("/cards/{id}/review", handler.SubmitReview)
	return r
}

func TestGetNextCard(t *testing.T) {
	t.Parallel()

	card, err := domain.NewCard("vowel_a", 1, "a", domain.ContentTypeLetter)
	require.NoError(t, err)
	svc := &mockReviewService{
		nextCardFn: func(context.Context, uuid.UUID, time.Time) (*review.Selection, error) {
			return &review.Selection{Card: card, IsNew: true}, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, discardLogger()), uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/next", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got CardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "vowel_a", got.ID)
	assert.Equal(t, "letter", got.ContentType)
	assert.True(t, got.IsNew)
}

func TestGetNextCardSessionComplete(t *testing.T) {
	t.Parallel()

	svc := &mockReviewService{
		nextCardFn: func(context.Context, uuid.UUID, time.Time) (*review.Selection, error) {
			return nil, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, discardLogger()), uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/next", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetNextCardMissingUser(t *testing.T) {
	t.Parallel()

	handler := NewCardHandler(&mockReviewService{}, discardLogger())

	rec := httptest.NewRecorder()
	handler.GetNextCard(rec, httptest.NewRequest(http.MethodGet, "/cards/next", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := &mockReviewService{
		submitReviewFn: func(_ context.Context, gotUser uuid.UUID, cardID string, rating domain.Rating, _ time.Time) (*domain.CardProgress, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, "vowel_a", cardID)
			assert.Equal(t, domain.RatingGood, rating)
			return &domain.CardProgress{
				UserID:       userID,
				CardID:       cardID,
				Stage:        domain.StageLearning,
				Stability:    2.3065,
				Difficulty:   4.8,
				Reps:         1,
				LastReviewAt: now,
				Due:          now.Add(time.Minute),
			}, nil
		},
	}
	router := newCardRouter(NewCardHandler(svc, discardLogger()), userID)

	// Clients send the numeric rating; the string form works too.
	for _, body := range []string{`{"rating": 3}`, `{"rating": "good"}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cards/vowel_a/review", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "body %s", body)
		var got ProgressResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "vowel_a", got.CardID)
		assert.Equal(t, "learning", got.Stage)
		assert.Equal(t, 1, got.Reps)
	}
}

func TestSubmitReviewInvalidBody(t *testing.T) {
	t.Parallel()

	router := newCardRouter(NewCardHandler(&mockReviewService{}, discardLogger()), uuid.New())

	for _, body := range []string{``, `not json`, `{"rating": "medium"}`, `{"rating": 9}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cards/vowel_a/review", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestSubmitReviewErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown card", review.ErrCardNotFound, http.StatusNotFound},
		{"stale review", srs.ErrOutOfOrderReview, http.StatusConflict},
		{"invalid rating", srs.ErrInvalidRating, http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockReviewService{
				submitReviewFn: func(context.Context, uuid.UUID, string, domain.Rating, time.Time) (*domain.CardProgress, error) {
					return nil, tt.err
				},
			}
			router := newCardRouter(NewCardHandler(svc, discardLogger()), uuid.New())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/cards/vowel_a/review", strings.NewReader(`{"rating": 3}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
