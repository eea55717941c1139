package api

import (
	"errors"
	"net/http"

	"github.com/readquill/readquill-api/internal/domain/srs"
	"github.com/readquill/readquill-api/internal/service/auth"
	"github.com/readquill/readquill-api/internal/service/review"
	"github.com/readquill/readquill-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, store.ErrLevelNotFound),
		errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrProgressNotFound):
		return http.StatusNotFound

	// A review submitted with a timestamp before the stored state was
	// written conflicts with what is already recorded.
	case errors.Is(err, srs.ErrOutOfOrderReview):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, srs.ErrInvalidRating),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrLevelNotFound):
		return "Level not found"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Card progress not found"

	case errors.Is(err, srs.ErrOutOfOrderReview):
		return "Review is older than the stored card state"

	case errors.Is(err, srs.ErrInvalidRating):
		return "Invalid rating"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
