// Package engine derives tamper-resistant access tiers from the action
// ledger, the violation log, vouches and on-chain trust signals. The engine
// is stateless between calls: every decision is recomputed from the
// authoritative logs, never served from a cache that can drift.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/abuse"
	"github.com/lumivault/gatekeeper/internal/engine/cooldown"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"github.com/lumivault/gatekeeper/internal/engine/tier"
	"github.com/lumivault/gatekeeper/internal/engine/trust"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// DefaultUpstreamTimeout bounds the chain-observer and vouch lookups per
// decision. On timeout those signals default to zero: the engine fails
// toward a lower tier, never toward granting access on missing data.
const DefaultUpstreamTimeout = 2 * time.Second

// ActionSource reads a user's ordered action history from the ledger.
type ActionSource interface {
	UserActions(ctx context.Context, userID string) ([]*types.Action, error)
}

// ViolationSource reads a user's ordered violation log.
type ViolationSource interface {
	UserViolations(ctx context.Context, userID string) ([]*types.Violation, error)
}

// VouchSource counts a user's currently active received vouches.
type VouchSource interface {
	ActiveVouchCount(ctx context.Context, userID string, now time.Time) (int, error)
}

// ChainTrust is the chain-observer signal for one user.
type ChainTrust struct {
	VerifiedClaims int64   `json:"verifiedClaims"`
	TotalClaims    int64   `json:"totalClaims"`
	WalletAgeDays  float64 `json:"walletAgeDays"`
}

// ChainObserver supplies on-chain verification and wallet age.
type ChainObserver interface {
	ChainTrust(ctx context.Context, userID string) (*ChainTrust, error)
}

// BlockedRecorder counts blocked decisions for observability. Best effort;
// failures must not affect the decision.
type BlockedRecorder interface {
	RecordBlocked(ctx context.Context, userID string)
}

// Diagnostics explains why a tier was assigned. Production responses redact
// most of it; tests and audit tooling read it in full.
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

	CooldownState  enum.CooldownState `json:"cooldownState"`
	ViolationCount int                `json:"violationCount"`
}

// Decision is the engine's answer for one gating request.
type Decision struct {
	UserID        string      `json:"userId"`
	Tier          enum.Tier   `json:"tier"`
	Score         float64     `json:"score"`
	CooldownUntil *time.Time  `json:"cooldownUntil,omitempty"`
	Degraded      bool        `json:"degraded"`
	Diagnostics   Diagnostics `json:"diagnostics"`
}

// Params bundles the engine dependencies.
type Params struct {
	Actions         ActionSource
	Violations      ViolationSource
	Vouches         VouchSource
	Chain           ChainObserver
	Blocked         BlockedRecorder
	Table           *score.Table
	Detector        *abuse.Detector
	UpstreamTimeout time.Duration
	Logger          *zap.Logger
}

// Engine computes access decisions. All scoring math is pure and CPU-only;
// the ledger and chain-observer reads happen once per decision and the
// results are passed in.
type Engine struct {
	actions         ActionSource
	violations      ViolationSource
	vouches         VouchSource
	chain           ChainObserver
	blocked         BlockedRecorder
	table           *score.Table
	detector        *abuse.Detector
	upstreamTimeout time.Duration
	logger          *zap.Logger
}

// New creates an engine from its dependencies.
func New(params Params) *Engine {
	timeout := params.UpstreamTimeout
	if timeout <= 0 {
		timeout = DefaultUpstreamTimeout
	}

	return &Engine{
		actions:         params.Actions,
		violations:      params.Violations,
		vouches:         params.Vouches,
		chain:           params.Chain,
		blocked:         params.Blocked,
		table:           params.Table,
		detector:        params.Detector,
		upstreamTimeout: timeout,
		logger:          params.Logger.Named("engine"),
	}
}

// Decision derives the access tier for one user. It is a pure read apart
// from the lazily recorded blocked-decision counter.
func (e *Engine) Decision(ctx context.Context, userID string) (*Decision, error) {
	now := time.Now()

	violations, err := e.violations.UserViolations(ctx, userID)
	if err != nil {
		e.logger.Warn("Violation log unavailable, degrading decision",
			zap.String("userID", userID), zap.Error(err))
		return e.degradedDecision(userID), nil
	}

	decision := &Decision{UserID: userID}

	status := cooldown.Evaluate(violations, now)
	decision.Diagnostics.CooldownState = status.State
	decision.Diagnostics.ViolationCount = status.ViolationCount

	// An active cooldown or permanent ban overrides any score.
	if status.State != enum.CooldownStateClean {
		decision.Tier = enum.TierBlocked
		decision.CooldownUntil = status.CooldownUntil
		e.recordBlocked(ctx, userID)

		return decision, nil
	}

	actions, err := e.actions.UserActions(ctx, userID)
	if err != nil {
		e.logger.Warn("Action ledger unavailable, degrading decision",
			zap.String("userID", userID), zap.Error(err))
		return e.degradedDecision(userID), nil
	}

	decision.Diagnostics.ActionCount = len(actions)

	// New and young accounts land on the neutral middle tier: never blocked
	// by default, never full by default.
	if len(actions) < score.MinHistory {
		decision.Tier = enum.TierPartial
		decision.Diagnostics.Gated = true
		decision.Diagnostics.ActionsNeeded = score.MinHistory - len(actions)

		return decision, nil
	}

	// Abuse signatures run independently of the score pipeline and can
	// force a block regardless of the computed tier.
	report := e.detector.Scan(actions, now)
	decision.Diagnostics.AbuseFlags = report.Flags
	decision.Diagnostics.TotalMisalignment = report.TotalMisalignment

	if report.ForceBlock {
		decision.Tier = enum.TierBlocked
		decision.Diagnostics.AbuseBlocked = true
		e.recordBlocked(ctx, userID)

		return decision, nil
	}

	scores := make([]float64, len(actions))
	for i, a := range actions {
		scores[i] = a.Score
	}

	behavioral := score.Evaluate(scores)
	decision.Diagnostics.RawScore = behavioral.Raw
	decision.Diagnostics.AdjustedScore = behavioral.Adjusted
	decision.Diagnostics.Variance = behavioral.Variance
	decision.Diagnostics.PenaltyApplied = behavioral.PenaltyApplied
	decision.Diagnostics.LightRatio = behavioral.LightRatio

	chainTrust, vouchCount, degraded := e.fetchUpstream(ctx, userID, now)
	decision.Degraded = degraded

	var onChain, temporal float64
	if chainTrust != nil {
		onChain = trust.OnChain(chainTrust.VerifiedClaims, chainTrust.TotalClaims)
		temporal = trust.Temporal(chainTrust.WalletAgeDays)
	}

	network := trust.Network(vouchCount)

	decision.Diagnostics.OnChain = onChain
	decision.Diagnostics.TemporalTrust = temporal
	decision.Diagnostics.NetworkAttest = network

	decision.Score = trust.Composite(onChain, behavioral.Adjusted, temporal, network)

	outcome := tier.Resolve(tier.Input{
		Score:      decision.Score,
		LightRatio: behavioral.LightRatio,
		Variance:   behavioral.Variance,
	})

	decision.Tier = outcome.Tier
	decision.Diagnostics.TierCapped = outcome.Capped
	decision.Diagnostics.CapReason = outcome.CapReason

	if decision.Tier == enum.TierBlocked {
		e.recordBlocked(ctx, userID)
	}

	return decision, nil
}

// Authorize produces a decision and checks it against the tier a gated
// operation requires. The decision is always returned so callers can show a
// countdown without learning the exact thresholds.
func (e *Engine) Authorize(ctx context.Context, userID string, required enum.Tier) (*Decision, error) {
	decision, err := e.Decision(ctx, userID)
	if err != nil {
		return nil, err
	}

	if decision.Tier >= required {
		return decision, nil
	}

	switch {
	case decision.Diagnostics.CooldownState != enum.CooldownStateClean:
		return decision, ErrCooldownActive
	case decision.Diagnostics.AbuseBlocked:
		return decision, ErrAbuseDetected
	case decision.Diagnostics.Gated:
		return decision, ErrInsufficientHistory
	default:
		return decision, ErrTierInsufficient
	}
}

// fetchUpstream retrieves the chain-observer signal and the active vouch
// count concurrently, each under a hard timeout. Either failure degrades the
// corresponding signal to zero.
func (e *Engine) fetchUpstream(ctx context.Context, userID string, now time.Time) (*ChainTrust, int, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.upstreamTimeout)
	defer cancel()

	var (
		chainTrust *ChainTrust
		vouchCount int
		degraded   atomic.Bool

		wg conc.WaitGroup
	)

	wg.Go(func() {
		result, err := e.chain.ChainTrust(fetchCtx, userID)
		if err != nil {
			e.logger.Warn("Chain observer unavailable",
				zap.String("userID", userID), zap.Error(err))
			degraded.Store(true)

			return
		}

		chainTrust = result
	})

	wg.Go(func() {
		count, err := e.vouches.ActiveVouchCount(fetchCtx, userID, now)
		if err != nil {
			e.logger.Warn("Vouch lookup unavailable",
				zap.String("userID", userID), zap.Error(err))
			degraded.Store(true)

			return
		}

		vouchCount = count
	})

	wg.Wait()

	return chainTrust, vouchCount, degraded.Load()
}

// degradedDecision is the fallback when the ledger or the violation log is
// unreachable: the most conservative tier that still lets the caller render
// something, never an upgrade on missing data.
func (e *Engine) degradedDecision(userID string) *Decision {
	return &Decision{
		UserID:   userID,
		Tier:     enum.TierDegraded,
		Degraded: true,
	}
}

func (e *Engine) recordBlocked(ctx context.Context, userID string) {
	if e.blocked == nil {
		return
	}

	e.blocked.RecordBlocked(ctx, userID)
}
