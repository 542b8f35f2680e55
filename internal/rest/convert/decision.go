// Package convert maps internal engine and database types to REST wire types.
package convert

import (
	"strings"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine"
	restTypes "github.com/lumivault/gatekeeper/internal/rest/types"
)

// Tier converts an engine tier to its REST API representation.
func Tier(tier enum.Tier) restTypes.Tier {
	switch tier {
	case enum.TierBlocked:
		return restTypes.TierBlocked
	case enum.TierDegraded:
		return restTypes.TierDegraded
	case enum.TierPartial:
		return restTypes.TierPartial
	case enum.TierFull:
		return restTypes.TierFull
	case enum.TierSovereign:
		return restTypes.TierSovereign
	default:
		return restTypes.TierBlocked
	}
}

// Decision converts an engine decision to the REST response. The full
// diagnostics block is attached only when exposeDiagnostics is set;
// production callers get the tier and score alone.
func Decision(decision *engine.Decision, exposeDiagnostics bool) restTypes.GetDecisionResponse {
	response := restTypes.GetDecisionResponse{
		UserID:        decision.UserID,
		Tier:          Tier(decision.Tier),
		Score:         decision.Score,
		CooldownUntil: decision.CooldownUntil,
		Degraded:      decision.Degraded,
	}

	if exposeDiagnostics {
		response.Diagnostics = diagnostics(&decision.Diagnostics)
	}

	return response
}

// Vouch converts a stored vouch to its REST representation.
func Vouch(vouch *types.Vouch) *restTypes.Vouch {
	if vouch == nil {
		return nil
	}

	return &restTypes.Vouch{
		ID:        vouch.ID,
		FromUser:  vouch.FromUser,
		ToUser:    vouch.ToUser,
		IssuedAt:  vouch.IssuedAt,
		ExpiresAt: vouch.ExpiresAt,
		Active:    vouch.Active,
		RevokedAt: vouch.RevokedAt,
	}
}

// Violation converts a stored violation to its REST representation.
func Violation(record *types.Violation, alreadyRecorded bool) restTypes.SubmitViolationResponse {
	return restTypes.SubmitViolationResponse{
		UserID:               record.UserID,
		OccurredAt:           record.OccurredAt,
		Severity:             strings.ToLower(record.Severity.String()),
		CooldownHoursApplied: record.CooldownHoursApplied,
		AlreadyRecorded:      alreadyRecorded,
	}
}

func diagnostics(d *engine.Diagnostics) *restTypes.Diagnostics {
	return &restTypes.Diagnostics{
		ActionCount:       d.ActionCount,
		Gated:             d.Gated,
		ActionsNeeded:     d.ActionsNeeded,
		RawScore:          d.RawScore,
		AdjustedScore:     d.AdjustedScore,
		Variance:          d.Variance,
		PenaltyApplied:    d.PenaltyApplied,
		LightRatio:        d.LightRatio,
		TierCapped:        d.TierCapped,
		CapReason:         d.CapReason,
		AbuseFlags:        d.AbuseFlags,
		TotalMisalignment: d.TotalMisalignment,
		AbuseBlocked:      d.AbuseBlocked,
		OnChain:           d.OnChain,
		TemporalTrust:     d.TemporalTrust,
		NetworkAttest:     d.NetworkAttest,
		CooldownState:     strings.ToLower(d.CooldownState.String()),
		ViolationCount:    d.ViolationCount,
	}
}
