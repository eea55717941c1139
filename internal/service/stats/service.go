// Package stats computes user learning statistics on demand from the
// append-only review log and the progress table. Nothing here is stored:
// every figure is derived at read time, so counters can never drift from
// the log they summarize.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/store"
)

// LevelProgress is a user's progress through one level.
type LevelProgress struct {
	LevelID            int     `json:"level_id"`
	LevelName          string  `json:"level_name"`
	TotalCards         int     `json:"total_cards"`
	MasteredCards      int     `json:"mastered_cards"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// UserStats is the full statistics aggregate for a user.
type UserStats struct {
	TodayReviews  int             `json:"today_reviews"`
	TotalReviews  int             `json:"total_reviews"`
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
	LevelProgress []LevelProgress `json:"level_progress"`
	CurrentLevel  int             `json:"current_level"`
}

// TodayStats is the lightweight aggregate a review session polls.
type TodayStats struct {
	NewCardsToday     int `json:"new_cards_today"`
	TotalReviewsToday int `json:"total_reviews_today"`
}

// Service computes statistics aggregates.
type Service struct {
	cards    store.CardStore
	progress store.ProgressStore
	logs     store.ReviewLogStore
	levels   store.LevelStore
	profiles store.ProfileStore
	logger   *slog.Logger
}

// NewService creates the stats service.
func NewService(
	cards store.CardStore,
	progress store.ProgressStore,
	logs store.ReviewLogStore,
	levels store.LevelStore,
	profiles store.ProfileStore,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cards:    cards,
		progress: progress,
		logs:     logs,
		levels:   levels,
		profiles: profiles,
		logger:   log.With(slog.String("component", "stats_service")),
	}
}

// UserStats aggregates the user's complete statistics as of now.
// Returns store.ErrProfileNotFound for unknown users.
func (s *Service) UserStats(ctx context.Context, userID uuid.UUID, now time.Time) (*UserStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	dayStart := startOfDayUTC(now)
	todayReviews, err := s.logs.CountSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count today reviews: %w", err)
	}
	totalReviews, err := s.logs.CountAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count total reviews: %w", err)
	}

	days, err := s.logs.ReviewDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list review days: %w", err)
	}
	current, longest := streaks(days, dayStart)

	levelProgress, err := s.levelProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.Debug("computed user stats",
		slog.String("user_id", userID.String()),
		slog.Int("today", todayReviews),
		slog.Int("total", totalReviews),
		slog.Int("streak", current))

	return &UserStats{
		TodayReviews:  todayReviews,
		TotalReviews:  totalReviews,
		CurrentStreak: current,
		LongestStreak: longest,
		LevelProgress: levelProgress,
		CurrentLevel:  profile.CurrentLevel,
	}, nil
}

// TodayStats aggregates today's cap consumption as of now.
func (s *Service) TodayStats(ctx context.Context, userID uuid.UUID, now time.Time) (*TodayStats, error) {
	dayStart := startOfDayUTC(now)

	reviews, err := s.logs.CountSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count today reviews: %w", err)
	}
	newCards, err := s.progress.CountCreatedSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count new cards today: %w", err)
	}

	return &TodayStats{
		NewCardsToday:     newCards,
		TotalReviewsToday: reviews,
	}, nil
}

func (s *Service) levelProgress(ctx context.Context, userID uuid.UUID) ([]LevelProgress, error) {
	levels, err := s.levels.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}

	out := make([]LevelProgress, 0, len(levels))
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
		out = append(out, LevelProgress{
			LevelID:            level.ID,
			LevelName:          level.Name,
			TotalCards:         total,
			MasteredCards:      mastered,
			ProgressPercentage: pct,
		})
	}
	return out, nil
}

// streaks derives the current and longest run of consecutive review days
// from the distinct review days, which must be midnight-UTC instants in
// descending order. The current streak requires a review today.
func streaks(days []time.Time, today time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	if days[0].Equal(today) {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].Sub(days[i]) == 24*time.Hour {
				current++
			} else {
				break
			}
		}
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
