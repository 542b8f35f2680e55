package fib_test

import (
	"testing"

	"github.com/lumivault/gatekeeper/internal/engine/fib"
	"github.com/stretchr/testify/assert"
)

func TestTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		n        int
		expected uint64
	}{
		{name: "zeroth term", n: 0, expected: 1},
		{name: "first term", n: 1, expected: 1},
		{name: "second term", n: 2, expected: 2},
		{name: "seventh term", n: 7, expected: 21},
		{name: "tenth term", n: 10, expected: 89},
		{name: "eleventh term", n: 11, expected: 144},
		{name: "twentieth term", n: 20, expected: 10946},
		{name: "negative clamps to zeroth", n: -3, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, fib.Term(tt.n))
		})
	}
}

func TestTermClampsAtCap(t *testing.T) {
	t.Parallel()

	capped := fib.Term(fib.MaxTerm)
	assert.Equal(t, capped, fib.Term(fib.MaxTerm+1))
	assert.Equal(t, capped, fib.Term(fib.MaxTerm+100))
}
