package domain

import "errors"

// Validation errors shared across domain entities. All are sentinel errors
// intended for errors.Is checks; store and API layers map them to their own
// error vocabularies.
var (
	// ErrInvalidRating indicates a rating outside the four defined levels.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidStage indicates an undefined learning stage value.
	ErrInvalidStage = errors.New("invalid learning stage")

	// ErrEmptyCardID indicates a card with no identifier.
	ErrEmptyCardID = errors.New("card ID cannot be empty")

	// ErrEmptyCardContent indicates a card with no text content.
	ErrEmptyCardContent = errors.New("card content cannot be empty")

	// ErrInvalidCardLevel indicates a card assigned to a level outside 1..MaxLevel.
	ErrInvalidCardLevel = errors.New("card level out of range")

	// ErrInvalidLevel indicates a level number outside 1..MaxLevel.
	ErrInvalidLevel = errors.New("level out of range")

	// ErrInvalidMasteryThreshold indicates a mastery threshold outside [0, 1].
	ErrInvalidMasteryThreshold = errors.New("mastery threshold must be between 0 and 1")

	// ErrEmptyUserID indicates an entity with no owning user.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrInvalidStability indicates a non-positive stability on a reviewed card.
	ErrInvalidStability = errors.New("stability must be positive once reviewed")

	// ErrInvalidDifficulty indicates a difficulty outside the model's bounds.
	ErrInvalidDifficulty = errors.New("difficulty out of range")
)
