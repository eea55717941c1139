package srs

import (
	"fmt"
	"time"
)

// Params configures the scheduler. Use DefaultParams for the production
// values; tests and future optimizer runs may substitute their own weights.
type Params struct {
	// Weights are the 21 FSRS v6 model weights.
	Weights [21]float64

	// DesiredRetention is the target recall probability used to convert
	// stability into a review interval.
	DesiredRetention float64

	// MaximumInterval caps the scheduled interval, in days.
	MaximumInterval int

	// LearningSteps are the fixed retry delays a card works through in the
	// Learning stage before graduating to Review.
	LearningSteps []time.Duration

	// RelapseSteps are the retry delays after a Review-stage card is
	// forgotten. A single step means one successful review returns the
	// card to the Review stage.
	RelapseSteps []time.Duration
}

// DefaultWeights are the published FSRS v6 default model weights.
var DefaultWeights = [21]float64{
	0.212, 1.2931, 2.3065, 8.2956, // w[0..3]  initial stability S₀(G)
	6.4133, 0.8334, 3.0194, 0.001, // w[4..7]  difficulty
	1.8722, 0.1666, 0.796, 1.4835, // w[8..11] recall stability
	0.0614, 0.2629, 1.6483, 0.6014, // w[12..15] forget stability
	1.8729, 0.5425, 0.0912, 0.0658, // w[16..19] easy bonus / short-term
	0.1542, // w[20] decay exponent
}

// weightLowerBounds and weightUpperBounds bracket the valid range of each
// model weight.
var (
	weightLowerBounds = [21]float64{
		0.001, 0.001, 0.001, 0.001,
		1.0, 0.001, 0.001, 0.001,
		0.0, 0.0, 0.001, 0.001,
		0.001, 0.001, 0.0, 0.0,
		1.0, 0.0, 0.0, 0.0,
		0.1,
	}
	weightUpperBounds = [21]float64{
		100.0, 100.0, 100.0, 100.0,
		10.0, 4.0, 4.0, 0.75,
		4.5, 0.8, 3.5, 5.0,
		0.25, 0.9, 4.0, 1.0,
		6.0, 2.0, 2.0, 0.8,
		0.8,
	}
)

// DefaultParams returns the production scheduler configuration: default
// weights, 0.9 desired retention, a 365-day interval ceiling, learning
// steps of 1 and 5 minutes, and a single 10-minute relapse step.
func DefaultParams() Params {
	return Params{
		Weights:          DefaultWeights,
		DesiredRetention: 0.9,
		MaximumInterval:  365,
		LearningSteps:    []time.Duration{1 * time.Minute, 5 * time.Minute},
		RelapseSteps:     []time.Duration{10 * time.Minute},
	}
}

// Validate checks weights against their bounds and the retention and
// interval settings against their valid ranges.
func (p Params) Validate() error {
	for i := range p.Weights {
		if p.Weights[i] < weightLowerBounds[i] || p.Weights[i] > weightUpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %f, bounds [%f, %f]",
				ErrInvalidParameters, i, p.Weights[i], weightLowerBounds[i], weightUpperBounds[i])
		}
	}
	if p.DesiredRetention <= 0 || p.DesiredRetention > 1 {
		return fmt.Errorf("%w: desired retention %f out of range (0, 1]", ErrInvalidParameters, p.DesiredRetention)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d must be at least 1 day", ErrInvalidParameters, p.MaximumInterval)
	}
	for _, s := range p.LearningSteps {
		if s <= 0 {
			return fmt.Errorf("%w: learning steps must be positive", ErrInvalidParameters)
		}
	}
	for _, s := range p.RelapseSteps {
		if s <= 0 {
			return fmt.Errorf("%w: relapse steps must be positive", ErrInvalidParameters)
		}
	}
	return nil
}
