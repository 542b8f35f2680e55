// Package cooldown evaluates the violation log into the escalating,
// Fibonacci-indexed lockout state. The log is append-only; everything here
// is derived fresh from it on each decision.
package cooldown

import (
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/fib"
)

const (
	// PermanentBanCount is the violation count at which the terminal ban
	// fires. Appeals run out of band after one year.
	PermanentBanCount = 12

	// MaxCooldownHours caps the escalation schedule.
	MaxCooldownHours = 3456

	// baseCooldownHours is the duration of the first violation's lockout.
	baseCooldownHours = 24
)

// Status is the derived cooldown state for one user.
type Status struct {
	State enum.CooldownState
	// ViolationCount is the escalation counter: it resets after 90
	// violation-free days while the records themselves are retained.
	ViolationCount int
	// TotalViolations is the lifetime record count, kept for audit.
	TotalViolations int
	CooldownUntil   *time.Time
	LastViolationAt *time.Time
}

// Hours returns the lockout duration for the given violation count:
// 24 hours scaled by the Fibonacci sequence, capped at MaxCooldownHours.
func Hours(count int) int {
	if count <= 0 {
		return 0
	}

	hours := baseCooldownHours * int(fib.Term(count-1))
	if hours > MaxCooldownHours {
		return MaxCooldownHours
	}

	return hours
}

// Evaluate derives the cooldown status from the ordered violation log
// (oldest first). The escalation counter resets whenever 90 violation-free
// days pass between records, or between the last record and now; reaching
// PermanentBanCount at any point is terminal regardless of later gaps.
func Evaluate(violations []*types.Violation, now time.Time) Status {
	if len(violations) == 0 {
		return Status{State: enum.CooldownStateClean}
	}

	var (
		count  int
		banned bool
	)

	for i, v := range violations {
		if i > 0 && v.OccurredAt.Sub(violations[i-1].OccurredAt) >= types.CounterResetWindow {
			count = 0
		}

		count++
		if count >= PermanentBanCount {
			banned = true
		}
	}

	last := violations[len(violations)-1]
	lastAt := last.OccurredAt
	until := lastAt.Add(time.Duration(Hours(count)) * time.Hour)

	status := Status{
		ViolationCount:  count,
		TotalViolations: len(violations),
		LastViolationAt: &lastAt,
	}

	switch {
	case banned:
		status.State = enum.CooldownStatePermanentlyBanned
	case now.Before(until):
		status.State = enum.CooldownStateCooling
		status.CooldownUntil = &until
	default:
		status.State = enum.CooldownStateClean
	}

	// The counter itself also resets after 90 violation-free days.
	if !banned && now.Sub(lastAt) >= types.CounterResetWindow {
		status.ViolationCount = 0
	}

	return status
}
