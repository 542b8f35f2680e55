package types

import (
	"errors"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types/enum"
)

// ErrViolationExists is returned when a violation with the same user and
// occurrence instant was already recorded. Retries must not double-count.
var ErrViolationExists = errors.New("violation already recorded")

// CounterResetWindow is how long a user must stay violation-free before the
// cooldown counter resets. The records themselves are kept for audit.
const CounterResetWindow = 90 * 24 * time.Hour

// Violation is an append-only record of detected abuse. The (UserID,
// OccurredAt) pair is unique so that POSTing the same violation twice is
// idempotent.
type Violation struct {
	UserID               string        `bun:",pk"      json:"userId"`
	OccurredAt           time.Time     `bun:",pk"      json:"occurredAt"`
	Severity             enum.Severity `bun:",notnull" json:"severity"`
	CooldownHoursApplied int           `bun:",notnull" json:"cooldownHoursApplied"`
	CreatedAt            time.Time     `bun:",notnull" json:"createdAt"`
}
