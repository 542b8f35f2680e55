package engine

import "errors"

var (
	// ErrInsufficientHistory marks the normal gated state of young accounts.
	// It never fails a decision; Authorize surfaces it when a caller demands
	// a tier the gated default cannot satisfy.
	ErrInsufficientHistory = errors.New("insufficient action history")

	// ErrCooldownActive means the user is locked out by the violation
	// schedule. Terminal for the gated request.
	ErrCooldownActive = errors.New("cooldown active")

	// ErrAbuseDetected means abuse signatures forced a block. Terminal for
	// the gated request.
	ErrAbuseDetected = errors.New("abuse pattern detected")

	// ErrTierInsufficient means the computed tier does not reach the level
	// the gated operation requires.
	ErrTierInsufficient = errors.New("access tier insufficient")

	// ErrUpstreamUnavailable marks a ledger or chain-observer failure. The
	// decision is still produced, degraded toward the most conservative
	// available tier; this error is only returned when even the ledger read
	// failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
