package tier_test

import (
	"testing"

	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/tier"
	"github.com/stretchr/testify/assert"
)

// A prior revision shipped a wrong top threshold (0.854 instead of 0.786),
// so the exact values are pinned to at least six decimal places.
func TestThresholdExactness(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.2360679, tier.BlockedBelow, 1e-7)
	assert.InDelta(t, 0.3819660, tier.DegradedBelow, 1e-7)
	assert.InDelta(t, 0.6180339, tier.PartialBelow, 1e-7)
	assert.InDelta(t, 0.7861513, tier.FullBelow, 1e-7)
	assert.InDelta(t, 0.6180339, tier.LightRatioFloor, 1e-7)
}

func TestThresholdSelfSimilarity(t *testing.T) {
	t.Parallel()

	// Each boundary is exactly phi (or sqrt phi) times the previous one.
	assert.InDelta(t, tier.Phi, tier.DegradedBelow/tier.BlockedBelow, 1e-9)
	assert.InDelta(t, tier.Phi, tier.PartialBelow/tier.DegradedBelow, 1e-9)
	assert.InDelta(t, tier.Phi, (tier.FullBelow/tier.PartialBelow)*(tier.FullBelow/tier.PartialBelow), 1e-9)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     tier.Input
		expected  enum.Tier
		capped    bool
		capReason string
	}{
		{
			name:     "very low score is blocked",
			input:    tier.Input{Score: 0.1, LightRatio: 1.0},
			expected: enum.TierBlocked,
		},
		{
			name:     "just below blocked boundary",
			input:    tier.Input{Score: 0.2360678, LightRatio: 1.0},
			expected: enum.TierBlocked,
		},
		{
			name:     "at blocked boundary is degraded",
			input:    tier.Input{Score: 0.2360680, LightRatio: 1.0},
			expected: enum.TierDegraded,
		},
		{
			name:     "middle score is partial",
			input:    tier.Input{Score: 0.5, LightRatio: 1.0},
			expected: enum.TierPartial,
		},
		{
			name:     "full with passing light ratio",
			input:    tier.Input{Score: 0.70, LightRatio: 0.8, Variance: 0.1},
			expected: enum.TierFull,
		},
		{
			name:      "nominal full capped at partial by light ratio",
			input:     tier.Input{Score: 0.70, LightRatio: 0.5, Variance: 0.1},
			expected:  enum.TierPartial,
			capped:    true,
			capReason: tier.CapReasonLightRatio,
		},
		{
			name:     "sovereign with passing gates",
			input:    tier.Input{Score: 0.9, LightRatio: 0.8, Variance: 0.1},
			expected: enum.TierSovereign,
		},
		{
			name:      "sovereign capped at full by variance",
			input:     tier.Input{Score: 0.9, LightRatio: 0.8, Variance: 0.3},
			expected:  enum.TierFull,
			capped:    true,
			capReason: tier.CapReasonVariance,
		},
		{
			name:      "sovereign capped at partial by light ratio",
			input:     tier.Input{Score: 0.9, LightRatio: 0.4, Variance: 0.1},
			expected:  enum.TierPartial,
			capped:    true,
			capReason: tier.CapReasonLightRatio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := tier.Resolve(tt.input)

			assert.Equal(t, tt.expected, outcome.Tier)
			assert.Equal(t, tt.capped, outcome.Capped)
			assert.Equal(t, tt.capReason, outcome.CapReason)
		})
	}
}
