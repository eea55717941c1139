package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/domain/srs"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/store"
)

// Verify interface compliance at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	db        *sql.DB
	cards     store.CardStore
	progress  store.ProgressStore
	logs      store.ReviewLogStore
	levels    store.LevelStore
	profiles  store.ProfileStore
	scheduler *srs.Scheduler
	limits    Limits
	logger    *slog.Logger
}

// NewService creates the review service. The *sql.DB is used to open the
// submission transaction; the stores must be backed by the same database.
func NewService(
	db *sql.DB,
	cards store.CardStore,
	progress store.ProgressStore,
	logs store.ReviewLogStore,
	levels store.LevelStore,
	profiles store.ProfileStore,
	scheduler *srs.Scheduler,
	limits Limits,
	log *slog.Logger,
) Service {
	if db == nil || cards == nil || progress == nil || logs == nil || levels == nil || profiles == nil || scheduler == nil {
		// ALLOW-PANIC: constructor enforcing required dependencies.
		panic("review: all dependencies must be non-nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &serviceImpl{
		db:        db,
		cards:     cards,
		progress:  progress,
		logs:      logs,
		levels:    levels,
		profiles:  profiles,
		scheduler: scheduler,
		limits:    limits,
		logger:    log.With(slog.String("component", "review_service")),
	}
}

// NextCard assembles the user's selection snapshot and applies the pure
// policy. The snapshot reads need no locking: counters derive from an
// append-only log, so a slightly stale read can at worst overshoot a cap
// by one review.
func (s *serviceImpl) NextCard(ctx context.Context, userID uuid.UUID, now time.Time) (*Selection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	dayStart := startOfDayUTC(now)
	reviews, err := s.logs.CountSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count reviews today: %w", err)
	}
	newCards, err := s.progress.CountCreatedSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count new cards today: %w", err)
	}

	progress, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	cards, err := s.cards.ListAtOrBelowLevel(ctx, profile.CurrentLevel)
	if err != nil {
		return nil, fmt.Errorf("list unlocked cards: %w", err)
	}

	snap := Snapshot{
		CurrentLevel: profile.CurrentLevel,
		Progress:     progress,
		Cards:        cards,
		Counters:     Counters{Reviews: reviews, NewCards: newCards},
	}
	selection, ok := SelectNext(snap, s.limits, now)
	if !ok {
		log.Debug("session complete",
			slog.String("user_id", userID.String()),
			slog.Int("reviews_today", reviews),
			slog.Int("new_cards_today", newCards))
		return nil, nil
	}

	log.Debug("selected next card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", selection.Card.ID),
		slog.Bool("is_new", selection.IsNew))
	return &selection, nil
}

// SubmitReview processes a rating inside a single transaction: lock or
// create the progress row, advance the memory model, persist the
// superseding state, append the immutable log entry, and check level
// promotion.
func (s *serviceImpl) SubmitReview(ctx context.Context, userID uuid.UUID, cardID string, rating domain.Rating, now time.Time) (*domain.CardProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.IsValid() {
		return nil, srs.ErrInvalidRating
	}

	var updated *domain.CardProgress
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)
		progress := s.progress.WithTx(tx)
		logs := s.logs.WithTx(tx)

		if _, err := cards.GetByID(ctx, cardID); err != nil {
			if store.IsNotFound(err) {
				return ErrCardNotFound
			}
			return fmt.Errorf("get card: %w", err)
		}

		prior, err := progress.GetForUpdate(ctx, userID, cardID)
		created := false
		if err != nil {
			if !store.IsNotFound(err) {
				return fmt.Errorf("get progress: %w", err)
			}
			prior, err = domain.NewCardProgress(userID, cardID, now)
			if err != nil {
				return fmt.Errorf("init progress: %w", err)
			}
			created = true
		}

		next, err := s.scheduler.Advance(prior, rating, now)
		if err != nil {
			return err
		}

		// Mastery is permanent: track the highest stability ever reached
		// and stamp mastered_at the first time it crosses the bar.
		if next.Stability > next.HighestStability {
			next.HighestStability = next.Stability
			if next.Mastered() && next.MasteredAt == nil {
				t := now
				next.MasteredAt = &t
				log.Info("card mastered",
					slog.String("user_id", userID.String()),
					slog.String("card_id", cardID),
					slog.Float64("stability_days", next.Stability))
			}
		}

		if created {
			if err := progress.Create(ctx, next); err != nil {
				return fmt.Errorf("create progress: %w", err)
			}
		} else {
			if err := progress.Update(ctx, next); err != nil {
				return fmt.Errorf("update progress: %w", err)
			}
		}

		entry, err := domain.NewReviewLog(next, rating, now)
		if err != nil {
			return fmt.Errorf("build review log: %w", err)
		}
		if err := logs.Append(ctx, entry); err != nil {
			return fmt.Errorf("append review log: %w", err)
		}

		if err := s.checkPromotion(ctx, tx, userID); err != nil {
			return fmt.Errorf("check level promotion: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) ||
			errors.Is(err, srs.ErrInvalidRating) ||
			errors.Is(err, srs.ErrOutOfOrderReview) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID))
		return nil, fmt.Errorf("submit review: %w", err)
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID),
		slog.String("rating", rating.String()),
		slog.String("stage", updated.Stage.String()),
		slog.Time("due", updated.Due))
	return updated, nil
}

// checkPromotion unlocks the next level when the mastered fraction of the
// current level's cards reaches the level's threshold.
func (s *serviceImpl) checkPromotion(ctx context.Context, tx *sql.Tx, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profiles := s.profiles.WithTx(tx)
	profile, err := profiles.Get(ctx, userID)
	if err != nil {
		return err
	}
	if profile.CurrentLevel >= domain.MaxLevel {
		return nil
	}

	level, err := s.levels.WithTx(tx).GetByID(ctx, profile.CurrentLevel)
	if err != nil {
		return err
	}
	total, err := s.cards.WithTx(tx).CountAtLevel(ctx, profile.CurrentLevel)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	mastered, err := s.progress.WithTx(tx).CountMasteredAtLevel(ctx, userID, profile.CurrentLevel)
	if err != nil {
		return err
	}

	if float64(mastered)/float64(total) < level.MasteryThreshold {
		return nil
	}

	nextLevel := profile.CurrentLevel + 1
	if err := profiles.UpdateLevel(ctx, userID, nextLevel); err != nil {
		return err
	}
	log.Info("level unlocked",
		slog.String("user_id", userID.String()),
		slog.Int("from_level", profile.CurrentLevel),
		slog.Int("to_level", nextLevel),
		slog.Int("mastered", mastered),
		slog.Int("total", total))
	return nil
}

// ensureProfile loads the user's profile, creating a fresh level-1 profile
// on first authenticated use.
func (s *serviceImpl) ensureProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}

	profile, err = domain.NewProfile(userID, "")
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// A concurrent request may have created it first.
		if store.IsDuplicate(err) {
			return s.profiles.Get(ctx, userID)
		}
		return nil, err
	}
	return profile, nil
}

// startOfDayUTC returns midnight UTC of the day containing t. Daily caps
// and counters are all keyed to UTC calendar days.
func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
