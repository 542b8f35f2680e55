package trust_test

import (
	"testing"

	"github.com/lumivault/gatekeeper/internal/engine/trust"
	"github.com/stretchr/testify/assert"
)

func TestTemporal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ageDays  float64
		expected float64
		delta    float64
	}{
		{name: "brand new wallet", ageDays: 0, expected: 0, delta: 0},
		{name: "negative age", ageDays: -5, expected: 0, delta: 0},
		{name: "thirty days accrues fast", ageDays: 30, expected: 0.49, delta: 0.01},
		{name: "a year in", ageDays: 365, expected: 0.84, delta: 0.01},
		{name: "thousand days nearly saturated", ageDays: 1000, expected: 0.99, delta: 0.005},
		{name: "beyond saturation clamps", ageDays: 5000, expected: 1.0, delta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, trust.Temporal(tt.ageDays), tt.delta)
		})
	}
}

func TestNetwork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vouches  int
		expected float64
	}{
		{name: "no vouches", vouches: 0, expected: 0},
		{name: "single vouch", vouches: 1, expected: 0.1},
		{name: "five vouches", vouches: 5, expected: 0.5},
		{name: "caps at ten", vouches: 10, expected: 1.0},
		{name: "stays capped beyond ten", vouches: 25, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, trust.Network(tt.vouches), 1e-9)
		})
	}
}

func TestOnChain(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, trust.OnChain(0, 0), 1e-9, "no claims contributes nothing")
	assert.InDelta(t, 0.75, trust.OnChain(3, 4), 1e-9)
	assert.InDelta(t, 1.0, trust.OnChain(4, 4), 1e-9)
	assert.InDelta(t, 1.0, trust.OnChain(9, 4), 1e-9, "ratio clamps at one")
}

func TestComposite(t *testing.T) {
	t.Parallel()

	// All signals at maximum yield exactly 1.
	assert.InDelta(t, 1.0, trust.Composite(1, 1, 1, 1), 1e-9)

	// Each weight applies to its own signal.
	assert.InDelta(t, 0.40, trust.Composite(1, 0, 0, 0), 1e-9)
	assert.InDelta(t, 0.25, trust.Composite(0, 1, 0, 0), 1e-9)
	assert.InDelta(t, 0.20, trust.Composite(0, 0, 1, 0), 1e-9)
	assert.InDelta(t, 0.15, trust.Composite(0, 0, 0, 1), 1e-9)
}
