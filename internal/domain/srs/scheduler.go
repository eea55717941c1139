package srs

import (
	"time"

	"github.com/readquill/readquill-api/internal/domain"
)

// Scheduler advances per-card memory states through the FSRS model.
// It carries only immutable configuration and is safe for concurrent use.
type Scheduler struct {
	model  model
	params Params
}

// NewScheduler creates a scheduler from the given parameters.
func NewScheduler(params Params) (*Scheduler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{model: newModel(params.Weights), params: params}, nil
}

// NewDefaultScheduler creates a scheduler with DefaultParams.
func NewDefaultScheduler() *Scheduler {
	s, err := NewScheduler(DefaultParams())
	if err != nil {
		// DefaultParams is a constant known-valid configuration.
		// ALLOW-PANIC: unreachable unless the defaults themselves are broken.
		panic(err)
	}
	return s
}

// Params returns a copy of the scheduler's configuration.
func (s *Scheduler) Params() Params {
	return s.params
}

// Advance computes the memory state superseding prior after a review with
// the given rating at the given instant. The prior state is not mutated;
// the returned state's Due field is the next review instant, always after
// now.
//
// Advance returns ErrInvalidRating for ratings outside the four defined
// levels and ErrOutOfOrderReview when now precedes the prior state's last
// review. In both cases no state is produced.
func (s *Scheduler) Advance(prior *domain.CardProgress, rating domain.Rating, now time.Time) (*domain.CardProgress, error) {
	if prior == nil {
		return nil, ErrNilProgress
	}
	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}
	if prior.Reviewed() && now.Before(prior.LastReviewAt) {
		return nil, ErrOutOfOrderReview
	}

	next := prior.Clone()

	var elapsedDays float64
	if prior.Reviewed() {
		elapsedDays = now.Sub(prior.LastReviewAt).Hours() / 24.0
	}

	s.updateMemory(next, rating, elapsedDays)
	interval := s.transition(next, rating)

	next.Reps++
	if rating == domain.RatingAgain {
		next.Lapses++
	}
	next.ElapsedDays = elapsedDays
	next.ScheduledDays = interval.Hours() / 24.0
	next.LastReviewAt = now
	next.Due = now.Add(interval)
	next.UpdatedAt = now

	return next, nil
}

// Retrievability returns the probability of recall for the given state at
// the given instant. It is 0 for a card that has never been reviewed.
func (s *Scheduler) Retrievability(progress *domain.CardProgress, now time.Time) float64 {
	if progress == nil || !progress.Reviewed() {
		return 0
	}
	elapsed := now.Sub(progress.LastReviewAt).Hours() / 24.0
	return s.model.retrievability(elapsed, progress.Stability)
}

// updateMemory recomputes stability and difficulty in place. The first
// review initializes both from the rating; later same-day reviews use the
// short-term curve and cross-day reviews the full retention-decay model.
func (s *Scheduler) updateMemory(c *domain.CardProgress, rating domain.Rating, elapsedDays float64) {
	if !c.Reviewed() {
		c.Stability = s.model.initStability(rating)
		c.Difficulty = s.model.initDifficulty(rating, true)
		return
	}

	if elapsedDays < 1 {
		c.Stability = s.model.shortTermStability(c.Stability, rating)
	} else {
		r := s.model.retrievability(elapsedDays, c.Stability)
		c.Stability = s.model.nextStability(c.Difficulty, c.Stability, r, rating)
	}
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, rating)
}

// transition applies the stage machine and returns the scheduling interval.
func (s *Scheduler) transition(c *domain.CardProgress, rating domain.Rating) time.Duration {
	switch c.Stage {
	case domain.StageNew:
		// First rating moves the card into Learning at step zero; Easy is
		// the graduate-immediately shortcut handled by stepTransition.
		c.Stage = domain.StageLearning
		c.Step = 0
		return s.stepTransition(c, rating, s.params.LearningSteps)
	case domain.StageLearning:
		return s.stepTransition(c, rating, s.params.LearningSteps)
	case domain.StageRelapsed:
		return s.stepTransition(c, rating, s.params.RelapseSteps)
	default:
		return s.reviewTransition(c, rating)
	}
}

// stepTransition walks the fixed short-delay sequence of the Learning and
// Relapsed stages. Again restarts the sequence, Good advances one step,
// Easy (or running off the end) graduates the card to Review.
func (s *Scheduler) stepTransition(c *domain.CardProgress, rating domain.Rating, steps []time.Duration) time.Duration {
	step := c.Step

	// No steps configured, or a stale step index with a passing rating:
	// graduate straight to Review.
	if len(steps) == 0 || (step >= len(steps) && rating != domain.RatingAgain) {
		return s.graduate(c)
	}

	switch rating {
	case domain.RatingAgain:
		c.Step = 0
		return steps[0]

	case domain.RatingHard:
		if step == 0 && len(steps) == 1 {
			return time.Duration(float64(steps[0]) * 1.5)
		}
		if step == 0 && len(steps) >= 2 {
			return (steps[0] + steps[1]) / 2
		}
		return steps[step]

	case domain.RatingGood:
		next := step + 1
		if next >= len(steps) {
			return s.graduate(c)
		}
		c.Step = next
		return steps[next]

	default: // Easy
		return s.graduate(c)
	}
}

// reviewTransition handles the Review stage: a lapse demotes the card to
// Relapsed and restarts the relapse steps, anything else keeps it in
// Review with a stability-derived interval.
func (s *Scheduler) reviewTransition(c *domain.CardProgress, rating domain.Rating) time.Duration {
	if rating == domain.RatingAgain && len(s.params.RelapseSteps) > 0 {
		c.Stage = domain.StageRelapsed
		c.Step = 0
		return s.params.RelapseSteps[0]
	}
	c.Step = 0
	return s.stabilityInterval(c)
}

// graduate promotes the card to the Review stage.
func (s *Scheduler) graduate(c *domain.CardProgress) time.Duration {
	c.Stage = domain.StageReview
	c.Step = 0
	return s.stabilityInterval(c)
}

func (s *Scheduler) stabilityInterval(c *domain.CardProgress) time.Duration {
	days := s.model.nextInterval(c.Stability, s.params.DesiredRetention, s.params.MaximumInterval)
	return time.Duration(days) * 24 * time.Hour
}
