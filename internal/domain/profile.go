package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds a user's account data and current unlocked reading level.
// The identity itself (email, password) belongs to the external identity
// provider; we only track the provider-issued user ID.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CurrentLevel int       `json:"current_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile creates a profile starting at level 1.
func NewProfile(id uuid.UUID, name string) (*Profile, error) {
	now := time.Now().UTC()
	p := &Profile{
		ID:           id,
		Name:         name,
		CurrentLevel: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the profile's user ID and level range.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.CurrentLevel < 1 || p.CurrentLevel > MaxLevel {
		return ErrInvalidLevel
	}
	return nil
}
