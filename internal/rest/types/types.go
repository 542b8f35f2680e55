// Package types defines the wire types of the REST API.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the access tier on the wire.
type Tier string

const (
	TierBlocked   Tier = "blocked"
	TierDegraded  Tier = "degraded"
	TierPartial   Tier = "partial"
	TierFull      Tier = "full"
	TierSovereign Tier = "sovereign"
)

// Diagnostics is the optional scoring breakdown attached to a decision.
// Only exposed when the server runs with diagnostics enabled; production
// responses omit it so callers cannot probe the exact thresholds.
type Diagnostics struct {
	ActionCount       int      `json:"actionCount"`
	Gated             bool     `json:"gated"`
	ActionsNeeded     int      `json:"actionsNeeded,omitempty"`
	RawScore          float64  `json:"rawScore"`
	AdjustedScore     float64  `json:"adjustedScore"`
	Variance          float64  `json:"variance"`
	PenaltyApplied    bool     `json:"penaltyApplied"`
	LightRatio        float64  `json:"lightRatio"`
	TierCapped        bool     `json:"tierCapped"`
	CapReason         string   `json:"capReason,omitempty"`
	AbuseFlags        []string `json:"abuseFlags,omitempty"`
	TotalMisalignment float64  `json:"totalMisalignment"`
	AbuseBlocked      bool     `json:"abuseBlocked,omitempty"`
	OnChain           float64  `json:"onChain"`
	TemporalTrust     float64  `json:"temporalTrust"`
	NetworkAttest     float64  `json:"networkAttestation"`
	CooldownState     string   `json:"cooldownState"`
	ViolationCount    int      `json:"violationCount"`
}

// GetDecisionResponse represents the response for the get decision endpoint.
type GetDecisionResponse struct {
	UserID        string       `json:"userId"`
	Tier          Tier         `json:"tier"`
	Score         float64      `json:"score"`
	CooldownUntil *time.Time   `json:"cooldownUntil,omitempty"`
	Degraded      bool         `json:"degraded"`
	Diagnostics   *Diagnostics `json:"diagnostics,omitempty"`
}

// SubmitActionRequest represents the request body for appending an action.
type SubmitActionRequest struct {
	UserID     string     `json:"userId"`
	Type       string     `json:"type"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
	// Score overrides the policy table's score for this action. Only
	// honored for authenticated callers; must be within [0, 1].
	Score *float64 `json:"score,omitempty"`
}

// SubmitActionResponse represents the stored action.
type SubmitActionResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Score      float64   `json:"score"`
	OccurredAt time.Time `json:"occurredAt"`
}

// SubmitViolationRequest represents the request body for recording a violation.
type SubmitViolationRequest struct {
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
	Severity   string    `json:"severity"`
}

// SubmitViolationResponse represents the stored violation.
type SubmitViolationResponse struct {
	UserID               string    `json:"userId"`
	OccurredAt           time.Time `json:"occurredAt"`
	Severity             string    `json:"severity"`
	CooldownHoursApplied int       `json:"cooldownHoursApplied"`
	AlreadyRecorded      bool      `json:"alreadyRecorded,omitempty"`
}

// CreateVouchRequest represents the request body for issuing a vouch.
type CreateVouchRequest struct {
	FromUser string `json:"fromUser"`
	ToUser   string `json:"toUser"`
}

// Vouch represents one vouch on the wire.
type Vouch struct {
	ID        uuid.UUID  `json:"id"`
	FromUser  string     `json:"fromUser"`
	ToUser    string     `json:"toUser"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Active    bool       `json:"active"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

// GetVouchResponse represents the response for the get vouch endpoint.
type GetVouchResponse struct {
	Vouch *Vouch `json:"vouch"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
