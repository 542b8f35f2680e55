// Package fib provides the shared Fibonacci sequence used for age weighting
// and cooldown escalation, with Fib(0) = Fib(1) = 1.
package fib

// MaxTerm is the highest precomputed term. Ages beyond it are clamped so
// weights stay bounded while old history keeps dominating.
const MaxTerm = 55

var terms [MaxTerm + 1]uint64

func init() {
	terms[0], terms[1] = 1, 1
	for i := 2; i <= MaxTerm; i++ {
		terms[i] = terms[i-1] + terms[i-2]
	}
}

// Term returns Fib(n). Negative inputs return Fib(0); inputs above MaxTerm
// are clamped to Fib(MaxTerm).
func Term(n int) uint64 {
	if n < 0 {
		return terms[0]
	}
	if n > MaxTerm {
		n = MaxTerm
	}
	return terms[n]
}
