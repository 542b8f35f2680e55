// Package tier maps composite authenticity scores to discrete access tiers.
// All break points are powers of the golden ratio, so the whole ladder hangs
// off a single constant instead of five independent magic numbers.
package tier

import (
	"math"

	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/score"
)

// Phi is the golden ratio.
var Phi = (1 + math.Sqrt(5)) / 2

// Successive thresholds differ by a factor of phi (or sqrt phi at the top),
// giving the ladder a self-similar shape.
var (
	// BlockedBelow is 0.2360679...; scores under it resolve to Blocked.
	BlockedBelow = 1 / (Phi * Phi * Phi)
	// DegradedBelow is 0.3819660...
	DegradedBelow = 1 / (Phi * Phi)
	// PartialBelow is 0.6180339...
	PartialBelow = 1 / Phi
	// FullBelow is 0.7861513...; scores at or above it are Sovereign
	// candidates.
	FullBelow = 1 / math.Sqrt(Phi)

	// LightRatioFloor is the minimum fraction of positive actions required
	// for Full and above.
	LightRatioFloor = 1 / Phi
)

// Cap reasons recorded in diagnostics when a candidate tier is reduced.
const (
	CapReasonLightRatio = "light ratio below threshold for upper tiers"
	CapReasonVariance   = "variance too high for sovereign tier"
)

// Input bundles the signals the resolver needs. Score is the composite
// authenticity score; LightRatio and Variance come from the behavioral
// pipeline.
type Input struct {
	Score      float64
	LightRatio float64
	Variance   float64
}

// Outcome is the resolved tier plus the reason for any cap, so callers and
// tests can verify why a tier was assigned, not just what it is.
type Outcome struct {
	Tier      enum.Tier
	Capped    bool
	CapReason string
}

// Resolve maps a composite score to a tier. Candidates at Full and above
// must pass the light-ratio floor or they are capped at Partial; Sovereign
// additionally requires the variance guard not to have fired, or the result
// is capped at Full.
func Resolve(in Input) Outcome {
	switch {
	case in.Score < BlockedBelow:
		return Outcome{Tier: enum.TierBlocked}
	case in.Score < DegradedBelow:
		return Outcome{Tier: enum.TierDegraded}
	case in.Score < PartialBelow:
		return Outcome{Tier: enum.TierPartial}
	case in.Score < FullBelow:
		if in.LightRatio < LightRatioFloor {
			return Outcome{Tier: enum.TierPartial, Capped: true, CapReason: CapReasonLightRatio}
		}

		return Outcome{Tier: enum.TierFull}
	default:
		if in.LightRatio < LightRatioFloor {
			return Outcome{Tier: enum.TierPartial, Capped: true, CapReason: CapReasonLightRatio}
		}

		if in.Variance >= score.VarianceThreshold {
			return Outcome{Tier: enum.TierFull, Capped: true, CapReason: CapReasonVariance}
		}

		return Outcome{Tier: enum.TierSovereign}
	}
}
