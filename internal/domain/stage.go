package domain

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Stage is the discrete learning stage of a card for a particular user.
//
// Every card moves through New → Learning → Review, and oscillates
// Review ⇄ Relapsed when it is forgotten and relearned. There is no
// terminal stage; a card is reviewable indefinitely.
type Stage int

const (
	StageNew      Stage = iota + 1 // Never reviewed.
	StageLearning                  // Working through the initial short-delay steps.
	StageReview                    // Graduated into the long-term review cycle.
	StageRelapsed                  // Forgotten from Review; relearning.
)

var (
	stageNames = [...]string{
		StageNew:      "new",
		StageLearning: "learning",
		StageReview:   "review",
		StageRelapsed: "relapsed",
	}
	stageByName = map[string]Stage{
		"new":      StageNew,
		"learning": StageLearning,
		"review":   StageReview,
		"relapsed": StageRelapsed,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Stage(0)
	_ json.Marshaler           = Stage(0)
	_ json.Unmarshaler         = (*Stage)(nil)
	_ encoding.TextMarshaler   = Stage(0)
	_ encoding.TextUnmarshaler = (*Stage)(nil)
)

// IsValid reports whether s is a defined stage.
func (s Stage) IsValid() bool {
	return s >= StageNew && s <= StageRelapsed
}

// String returns the lowercase name of the stage. For invalid values it
// returns "stage(n)".
func (s Stage) String() string {
	if s.IsValid() {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStage, int(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	v, ok := stageByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStage, text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Stage serializes as a JSON string.
func (s Stage) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStage, data)
	}
	return s.UnmarshalText([]byte(str))
}
