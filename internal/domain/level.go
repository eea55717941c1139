package domain

// MaxLevel is the highest reading level. Levels run 1 (vowels) through
// MaxLevel (complex patterns) and unlock progressively as the user masters
// the cards of each level.
const MaxLevel = 10

// DefaultMasteryThreshold is the fraction of a level's cards the user must
// master before the next level unlocks, unless the level overrides it.
const DefaultMasteryThreshold = 0.8

// Level is one of the ten progressive reading difficulty levels.
type Level struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	MasteryThreshold float64 `json:"mastery_threshold"`
}

// Validate checks that the level number and mastery threshold are in range.
func (l *Level) Validate() error {
	if l.ID < 1 || l.ID > MaxLevel {
		return ErrInvalidLevel
	}
	if l.MasteryThreshold < 0 || l.MasteryThreshold > 1 {
		return ErrInvalidMasteryThreshold
	}
	return nil
}
