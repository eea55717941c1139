package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/readquill/readquill-api/internal/domain/srs"
	"github.com/readquill/readquill-api/internal/service/auth"
	"github.com/readquill/readquill-api/internal/service/review"
	"github.com/readquill/readquill-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"profile not found", store.ErrProfileNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get card: %w", store.ErrCardNotFound), http.StatusNotFound},
		{"out of order review", srs.ErrOutOfOrderReview, http.StatusConflict},
		{"invalid rating", srs.ErrInvalidRating, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Card not found", GetSafeErrorMessage(review.ErrCardNotFound))
	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Invalid rating", GetSafeErrorMessage(srs.ErrInvalidRating))

	// Internal details must never leak through the safe message.
	internal := errors.New("pq: connection to postgres://app:secret@db failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
