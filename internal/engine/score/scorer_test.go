package score_test

import (
	"testing"

	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"github.com/stretchr/testify/assert"
)

func repeatScores(value float64, count int) []float64 {
	scores := make([]float64, count)
	for i := range scores {
		scores[i] = value
	}
	return scores
}

func TestEquilibrium(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scores   []float64
		expected float64
		delta    float64
	}{
		{
			name:     "empty history scores zero",
			scores:   nil,
			expected: 0,
			delta:    0,
		},
		{
			name:     "single action keeps its score",
			scores:   []float64{0.7},
			expected: 0.7,
			delta:    1e-9,
		},
		{
			name:     "uniform history keeps its score",
			scores:   repeatScores(0.6, 30),
			expected: 0.6,
			delta:    1e-9,
		},
		{
			name: "two perfect recent actions barely move a poor history",
			scores: append(
				repeatScores(0.1, 19),
				1.0, 1.0,
			),
			expected: 0.1001,
			delta:    0.001,
		},
		{
			name: "recent poor burst barely moves a good history",
			scores: append(
				repeatScores(0.9, 19),
				0.0, 0.0,
			),
			expected: 0.9,
			delta:    0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, score.Equilibrium(tt.scores), tt.delta)
		})
	}
}

func TestEquilibriumOldHistoryDominates(t *testing.T) {
	t.Parallel()

	// A long good history followed by more and more perfect actions should
	// converge toward the old value slowly, never jump.
	history := repeatScores(0.2, 40)
	previous := score.Equilibrium(history)

	for range 10 {
		history = append(history, 1.0)
		current := score.Equilibrium(history)

		assert.Less(t, current, 0.3, "new actions must not dominate old history")
		assert.GreaterOrEqual(t, current, previous-1e-9, "positive actions must not lower the score")
		previous = current
	}
}

func TestVariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scores   []float64
		expected float64
		delta    float64
	}{
		{
			name:     "empty history",
			scores:   nil,
			expected: 0,
			delta:    0,
		},
		{
			name:     "single action",
			scores:   []float64{0.9},
			expected: 0,
			delta:    0,
		},
		{
			name:     "steady behavior has zero variance",
			scores:   repeatScores(0.8, 20),
			expected: 0,
			delta:    1e-9,
		},
		{
			name: "only the recent window counts",
			scores: append(
				[]float64{0.0, 1.0, 0.0, 1.0, 0.0, 1.0, 0.0},
				repeatScores(0.8, score.VarianceWindow)...,
			),
			expected: 0,
			delta:    1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, score.Variance(tt.scores, score.VarianceWindow), tt.delta)
		})
	}
}

func TestEvaluateOscillationPenalty(t *testing.T) {
	t.Parallel()

	// Strict 1.0/0.0 alternation probing the threshold must be flagged even
	// though its naive mean sits near 0.5.
	scores := make([]float64, 21)
	for i := range scores {
		if i%2 == 0 {
			scores[i] = 1.0
		}
	}

	result := score.Evaluate(scores)

	assert.GreaterOrEqual(t, result.Variance, score.VarianceThreshold)
	assert.True(t, result.PenaltyApplied)
	assert.Less(t, result.Adjusted, result.Raw)
	assert.InDelta(t, result.Raw*(1-result.Variance), result.Adjusted, 1e-9)
}

func TestEvaluateSteadyBehaviorUnpenalized(t *testing.T) {
	t.Parallel()

	result := score.Evaluate(repeatScores(0.85, 25))

	assert.False(t, result.PenaltyApplied)
	assert.InDelta(t, result.Raw, result.Adjusted, 1e-9)
	assert.InDelta(t, 1.0, result.LightRatio, 1e-9)
}

func TestLightRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scores   []float64
		expected float64
	}{
		{name: "empty history", scores: nil, expected: 0},
		{name: "all positive", scores: []float64{0.6, 0.9, 1.0}, expected: 1.0},
		{name: "all negative", scores: []float64{0.1, 0.5, 0.0}, expected: 0},
		{name: "half positive", scores: []float64{0.6, 0.4, 0.9, 0.2}, expected: 0.5},
		{name: "boundary score is not positive", scores: []float64{0.5}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, score.LightRatio(tt.scores), 1e-9)
		})
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := score.NewTable(map[string]score.Policy{
		"upload":       {Score: 0.9, Class: enum.ActionClassContribution},
		"download":     {Score: 0.5, Class: enum.ActionClassRead},
		"verify_claim": {Score: 0.8, Class: enum.ActionClassVerification},
		"overflowing":  {Score: 1.7, Class: enum.ActionClassNeutral},
	}, 0.5)

	assert.InDelta(t, 0.9, table.Score("upload"), 1e-9)
	assert.InDelta(t, 1.0, table.Score("overflowing"), 1e-9, "scores are clamped to [0,1]")
	assert.InDelta(t, 0.5, table.Score("unknown_type"), 1e-9, "unknown types use the default")

	assert.Equal(t, enum.ActionClassContribution, table.Class("upload"))
	assert.Equal(t, enum.ActionClassRead, table.Class("download"))
	assert.Equal(t, enum.ActionClassVerification, table.Class("verify_claim"))
	assert.Equal(t, enum.ActionClassNeutral, table.Class("unknown_type"))
}
