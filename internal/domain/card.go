package domain

import "time"

// ContentType classifies what a card teaches.
type ContentType string

// Supported card content types, ordered by reading complexity.
const (
	ContentTypeLetter   ContentType = "letter"
	ContentTypeSyllable ContentType = "syllable"
	ContentTypeWord     ContentType = "word"
)

// Card is a single learning item in the catalog: a letter, syllable, or word
// together with its illustration and pronunciation media. Cards are shared
// between users; all per-user state lives in CardProgress.
type Card struct {
	ID          string      `json:"id"`
	LevelID     int         `json:"level_id"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	ImageURL    string      `json:"image_url,omitempty"`
	AudioURL    string      `json:"audio_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewCard creates a catalog card and validates it.
func NewCard(id string, levelID int, content string, contentType ContentType) (*Card, error) {
	card := &Card{
		ID:          id,
		LevelID:     levelID,
		Content:     content,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks that the card has an ID, content, and a level in range.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ErrEmptyCardID
	}
	if c.Content == "" {
		return ErrEmptyCardContent
	}
	if c.LevelID < 1 || c.LevelID > MaxLevel {
		return ErrInvalidCardLevel
	}
	return nil
}
