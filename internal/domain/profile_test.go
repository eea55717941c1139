package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	p, err := NewProfile(id, "Lucía")
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, 1, p.CurrentLevel, "new profiles start at level 1")

	_, err = NewProfile(uuid.Nil, "")
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestProfileValidateLevelRange(t *testing.T) {
	t.Parallel()

	p := Profile{ID: uuid.New(), CurrentLevel: MaxLevel}
	assert.NoError(t, p.Validate())

	p.CurrentLevel = MaxLevel + 1
	assert.ErrorIs(t, p.Validate(), ErrInvalidLevel)

	p.CurrentLevel = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidLevel)
}
