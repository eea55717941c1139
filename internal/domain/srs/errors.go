package srs

import "errors"

// Sentinel errors returned by the scheduler. Check with errors.Is.
var (
	// ErrNilProgress indicates a nil prior state was passed to Advance.
	ErrNilProgress = errors.New("srs: card progress cannot be nil")

	// ErrInvalidRating indicates a rating outside the four defined levels.
	// The call is rejected wholesale; no state is produced.
	ErrInvalidRating = errors.New("srs: invalid rating")

	// ErrOutOfOrderReview indicates a review instant earlier than the prior
	// state's last review. Callers must surface this as a conflict instead
	// of silently reordering history.
	ErrOutOfOrderReview = errors.New("srs: review timestamp precedes last review")

	// ErrInvalidParameters indicates scheduler parameters out of bounds.
	ErrInvalidParameters = errors.New("srs: parameters out of bounds")
)
