// Package score implements the behavioral half of the authenticity pipeline:
// the Fibonacci age-weighted equilibrium score, the variance guard against
// oscillating behavior, and the light ratio used to gate upper tiers.
package score

import (
	"github.com/lumivault/gatekeeper/internal/engine/fib"
)

const (
	// MinHistory is the minimum number of recorded actions before any tier
	// above the neutral default can be granted. A short burst of actions
	// must not be able to bootstrap trust.
	MinHistory = 21

	// VarianceWindow is how many of the most recent actions the variance
	// guard inspects.
	VarianceWindow = 13

	// VarianceThreshold marks behavior as oscillating when exceeded.
	VarianceThreshold = 0.25

	// PositiveScore is the cutoff above which an action counts toward the
	// light ratio.
	PositiveScore = 0.5
)

// Result carries the behavioral pipeline output plus the intermediate values
// needed for diagnostics and auditing.
type Result struct {
	ActionCount    int
	Raw            float64
	Adjusted       float64
	Variance       float64
	PenaltyApplied bool
	LightRatio     float64
}

// Equilibrium computes the age-weighted aggregate of the ordered score
// history (oldest first). Weight grows with age: the oldest action carries
// the largest Fibonacci weight, so a long record of good behavior cannot be
// erased by a short burst of new activity, and a malicious actor cannot buy
// trust quickly. Ages beyond fib.MaxTerm share the capped weight.
func Equilibrium(scores []float64) float64 {
	n := len(scores)
	if n == 0 {
		return 0
	}

	var weighted, total float64

	for i, s := range scores {
		w := float64(fib.Term(n - 1 - i))
		weighted += s * w
		total += w
	}

	return weighted / total
}

// Variance computes the sample variance of the most recent window scores.
// Sample variance (n-1 denominator) is used so that a strictly alternating
// 1.0/0.0 history lands above the oscillation threshold.
func Variance(scores []float64, window int) float64 {
	recent := scores
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	n := len(recent)
	if n < 2 {
		return 0
	}

	var mean float64
	for _, s := range recent {
		mean += s
	}
	mean /= float64(n)

	var sum float64
	for _, s := range recent {
		d := s - mean
		sum += d * d
	}

	return sum / float64(n-1)
}

// LightRatio returns the fraction of actions scoring above PositiveScore.
func LightRatio(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	var positive int
	for _, s := range scores {
		if s > PositiveScore {
			positive++
		}
	}

	return float64(positive) / float64(len(scores))
}

// Evaluate runs the full behavioral pipeline over an ordered score history
// (oldest first). It is pure and performs no I/O.
func Evaluate(scores []float64) Result {
	result := Result{
		ActionCount: len(scores),
		Raw:         Equilibrium(scores),
		Variance:    Variance(scores, VarianceWindow),
		LightRatio:  LightRatio(scores),
	}

	result.Adjusted = result.Raw
	if result.Variance > VarianceThreshold {
		penalty := result.Variance
		if penalty > 1 {
			penalty = 1
		}

		result.Adjusted = result.Raw * (1 - penalty)
		result.PenaltyApplied = true
	}

	return result
}
