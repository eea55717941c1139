package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// LevelOverview is one level with its unlock state and the user's progress
// through it, as served by the levels endpoint.
type LevelOverview struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	MasteryThreshold   float64 `json:"mastery_threshold"`
	IsUnlocked         bool    `json:"is_unlocked"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// Levels returns every level annotated with the user's unlock state and
// mastery progress. Returns store.ErrProfileNotFound for unknown users.
func (s *Service) Levels(ctx context.Context, userID uuid.UUID) ([]LevelOverview, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	levels, err := s.levels.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}

	out := make([]LevelOverview, 0, len(levels))
	for _, level := range levels {
		total, err := s.cards.CountAtLevel(ctx, level.ID)
		if err != nil {
			return nil, fmt.Errorf("count cards at level %d: %w", level.ID, err)
		}
		mastered, err := s.progress.CountMasteredAtLevel(ctx, userID, level.ID)
		if err != nil {
			return nil, fmt.Errorf("count mastered at level %d: %w", level.ID, err)
		}

		var pct float64
		if total > 0 {
			pct = math.Round(float64(mastered)/float64(total)*1000) / 10
		}
		out = append(out, LevelOverview{
			ID:                 level.ID,
			Name:               level.Name,
			Description:        level.Description,
			MasteryThreshold:   level.MasteryThreshold,
			IsUnlocked:         level.ID <= profile.CurrentLevel,
			ProgressPercentage: pct,
		})
	}
	return out, nil
}
