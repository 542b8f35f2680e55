package types

import (
	"time"

	"github.com/google/uuid"
)

// Action is a single entry in the append-only action ledger. Actions are
// immutable once recorded; the engine derives all trust state from them.
type Action struct {
	ID         uuid.UUID `bun:",pk,type:uuid"  json:"id"`
	UserID     string    `bun:",notnull"       json:"userId"`
	Type       string    `bun:",notnull"       json:"type"`
	Score      float64   `bun:",notnull"       json:"score"`
	OccurredAt time.Time `bun:",notnull"       json:"occurredAt"`
}

// IsPositive reports whether the action counts toward the light ratio.
func (a *Action) IsPositive() bool {
	return a.Score > 0.5
}
