package srs

import (
	"math"

	"github.com/readquill/readquill-api/internal/domain"
)

// model holds the weights plus the constants precomputed from them. The
// decay exponent and its derived factor appear in every retrievability and
// interval computation, so they are computed once per scheduler.
type model struct {
	w      [21]float64
	decay  float64 // -w[20]
	factor float64 // 0.9^(1/decay) - 1
}

func newModel(w [21]float64) model {
	decay := -w[20]
	factor := math.Pow(0.9, 1.0/decay) - 1.0
	return model{w: w, decay: decay, factor: factor}
}

// retrievability computes R(t, S) = (1 + factor * t / S) ^ decay, the
// probability of recall t days after a review that left stability S.
func (m *model) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+m.factor*elapsedDays/stability, m.decay)
}

// initStability returns the initial stability S₀(G) for a first review.
func (m *model) initStability(r domain.Rating) float64 {
	return clampStability(m.w[r-1])
}

// initDifficulty returns the initial difficulty D₀(G) = w[4] - e^(w[5]*(G-1)) + 1.
// When clamp is false the raw value is returned; mean reversion needs the
// unclamped D₀(Easy).
func (m *model) initDifficulty(r domain.Rating, clamp bool) float64 {
	d := m.w[4] - math.Exp(m.w[5]*float64(r-1)) + 1
	if clamp {
		return clampDifficulty(d)
	}
	return d
}

// nextInterval converts stability into a whole-day review interval:
// I(r, S) = round((S / factor) * (r^(1/decay) - 1)), clamped to [1, maxIvl].
func (m *model) nextInterval(stability, desiredRetention float64, maxIvl int) int {
	ivl := stability / m.factor * (math.Pow(desiredRetention, 1.0/m.decay) - 1)
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if days > maxIvl {
		days = maxIvl
	}
	return days
}

// shortTermStability handles same-day re-reviews, where the decay curve has
// no meaningful elapsed time to work with:
//
//	SInc = e^(w[17] * (G - 3 + w[18])) * S^(-w[19])
//	SInc = max(SInc, 1) for Good and Easy
//	S' = clamp(S * SInc)
func (m *model) shortTermStability(stability float64, r domain.Rating) float64 {
	sInc := math.Exp(m.w[17]*(float64(r)-3+m.w[18])) * math.Pow(stability, -m.w[19])
	if r == domain.RatingGood || r == domain.RatingEasy {
		sInc = math.Max(sInc, 1.0)
	}
	return clampStability(stability * sInc)
}

// nextDifficulty applies the per-review difficulty delta with linear damping
// and mean reversion toward the unclamped D₀(Easy):
//
//	ΔD = -w[6] * (G - 3)
//	D' = D + (10 - D) * ΔD / 9
//	D'' = clamp(w[7]*D₀(Easy) + (1-w[7])*D')
func (m *model) nextDifficulty(difficulty float64, r domain.Rating) float64 {
	deltaD := -m.w[6] * (float64(r) - 3)
	dPrime := difficulty + (10-difficulty)*deltaD/9
	d0Easy := m.initDifficulty(domain.RatingEasy, false)
	return clampDifficulty(m.w[7]*d0Easy + (1-m.w[7])*dPrime)
}

// nextStability dispatches on recall success.
func (m *model) nextStability(d, s, r float64, rating domain.Rating) float64 {
	if rating == domain.RatingAgain {
		return m.forgetStability(d, s, r)
	}
	return m.recallStability(d, s, r, rating)
}

// recallStability computes the post-review stability after a successful
// recall (Hard, Good, or Easy):
//
//	S' = S * (1 + e^w[8] * (11-D) * S^(-w[9]) * (e^((1-R)*w[10]) - 1) * hardPenalty * easyBonus)
func (m *model) recallStability(d, s, r float64, rating domain.Rating) float64 {
	hardPenalty := 1.0
	if rating == domain.RatingHard {
		hardPenalty = m.w[15]
	}
	easyBonus := 1.0
	if rating == domain.RatingEasy {
		easyBonus = m.w[16]
	}
	return s * (1 + math.Exp(m.w[8])*
		(11-d)*
		math.Pow(s, -m.w[9])*
		(math.Exp((1-r)*m.w[10])-1)*
		hardPenalty*easyBonus)
}

// forgetStability computes the post-lapse stability, the lesser of the
// long-term forget curve and the short-term floor:
//
//	long  = w[11] * D^(-w[12]) * ((S+1)^w[13] - 1) * e^((1-R)*w[14])
//	short = S / e^(w[17] * w[18])
func (m *model) forgetStability(d, s, r float64) float64 {
	long := m.w[11] *
		math.Pow(d, -m.w[12]) *
		(math.Pow(s+1, m.w[13]) - 1) *
		math.Exp((1-r)*m.w[14])
	short := s / math.Exp(m.w[17]*m.w[18])
	return math.Min(long, short)
}

func clampStability(s float64) float64 {
	return math.Max(s, 0.001)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}
