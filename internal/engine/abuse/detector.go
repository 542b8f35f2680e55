// Package abuse scans action histories for extraction, automation, forgery
// and burst-attack signatures. The detector runs independently of the score
// pipeline and can force a block regardless of the computed tier.
package abuse

import (
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"go.uber.org/zap"
)

// Flag names recorded in diagnostics.
const (
	FlagExtraction = "extraction"
	FlagAutomation = "automation"
	FlagForgery    = "forgery"
	FlagBurst      = "burst_attack"
)

// Config holds the detector thresholds. All values are policy, injected from
// configuration; the zero value is unusable, use DefaultConfig as a base.
type Config struct {
	// ExtractionWindow is the rolling window for the extraction check.
	ExtractionWindow time.Duration
	// ExtractionMaxReads flags when more read actions than this occur in the
	// window with zero contributions.
	ExtractionMaxReads int
	// AutomationWindow and AutomationMaxActions bound the human plausibility
	// ceiling on action rate.
	AutomationWindow     time.Duration
	AutomationMaxActions int
	// ForgeryMinAttempts is the minimum number of verification attempts
	// before the failure ratio is meaningful.
	ForgeryMinAttempts int
	// ForgeryFailRatio flags when failed verifications exceed this fraction
	// of attempts.
	ForgeryFailRatio float64
	// BurstWindow, BurstMinHigh, BurstHighScore and BurstPriorMean define
	// the burst-attack signature: BurstMinHigh or more of the last
	// BurstWindow actions scoring at least BurstHighScore while the prior
	// history averages below BurstPriorMean.
	BurstWindow    int
	BurstMinHigh   int
	BurstHighScore float64
	BurstPriorMean float64
	// Misalignment weights per flag, and the threshold below which the user
	// is forced to Blocked.
	ExtractionWeight float64
	AutomationWeight float64
	ForgeryWeight    float64
	BurstWeight      float64
	BlockThreshold   float64
}

// DefaultConfig returns the detector thresholds used when the policy file
// does not override them.
func DefaultConfig() Config {
	return Config{
		ExtractionWindow:     time.Hour,
		ExtractionMaxReads:   50,
		AutomationWindow:     time.Minute,
		AutomationMaxActions: 60,
		ForgeryMinAttempts:   5,
		ForgeryFailRatio:     0.5,
		BurstWindow:          10,
		BurstMinHigh:         8,
		BurstHighScore:       0.95,
		BurstPriorMean:       0.4,
		ExtractionWeight:     -0.2,
		AutomationWeight:     -0.3,
		ForgeryWeight:        -0.4,
		BurstWeight:          -0.3,
		BlockThreshold:       -0.5,
	}
}

// Report is the detector output for one scan.
type Report struct {
	Flags             []string
	TotalMisalignment float64
	ForceBlock        bool
}

// Detector scans ordered action histories for abuse signatures.
type Detector struct {
	cfg    Config
	table  *score.Table
	logger *zap.Logger
}

// New creates a detector with the given policy and score table.
func New(cfg Config, table *score.Table, logger *zap.Logger) *Detector {
	return &Detector{
		cfg:    cfg,
		table:  table,
		logger: logger.Named("abuse"),
	}
}

// Scan inspects the ordered history (oldest first) and accumulates negative
// misalignment weight for each matched signature. Below the block threshold
// the caller must force the user to Blocked.
func (d *Detector) Scan(actions []*types.Action, now time.Time) Report {
	var report Report

	if len(actions) == 0 {
		return report
	}

	if d.extraction(actions, now) {
		report.Flags = append(report.Flags, FlagExtraction)
		report.TotalMisalignment += d.cfg.ExtractionWeight
	}

	if d.automation(actions) {
		report.Flags = append(report.Flags, FlagAutomation)
		report.TotalMisalignment += d.cfg.AutomationWeight
	}

	if d.forgery(actions) {
		report.Flags = append(report.Flags, FlagForgery)
		report.TotalMisalignment += d.cfg.ForgeryWeight
	}

	if d.burst(actions) {
		report.Flags = append(report.Flags, FlagBurst)
		report.TotalMisalignment += d.cfg.BurstWeight
	}

	if report.TotalMisalignment < d.cfg.BlockThreshold {
		report.ForceBlock = true

		d.logger.Warn("Abuse signatures force block",
			zap.Strings("flags", report.Flags),
			zap.Float64("totalMisalignment", report.TotalMisalignment))
	}

	return report
}

// extraction matches a window full of read actions with zero contributions.
func (d *Detector) extraction(actions []*types.Action, now time.Time) bool {
	cutoff := now.Add(-d.cfg.ExtractionWindow)

	var reads, contributions int

	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		if a.OccurredAt.Before(cutoff) {
			break
		}

		switch d.table.Class(a.Type) {
		case enum.ActionClassRead:
			reads++
		case enum.ActionClassContribution:
			contributions++
		case enum.ActionClassNeutral, enum.ActionClassVerification:
		}
	}

	return reads > d.cfg.ExtractionMaxReads && contributions == 0
}

// automation matches an action rate above the human plausibility ceiling in
// any window of the history.
func (d *Detector) automation(actions []*types.Action) bool {
	start := 0
	for end := range actions {
		for actions[end].OccurredAt.Sub(actions[start].OccurredAt) > d.cfg.AutomationWindow {
			start++
		}

		if end-start+1 > d.cfg.AutomationMaxActions {
			return true
		}
	}

	return false
}

// forgery matches a high ratio of failed verification attempts.
func (d *Detector) forgery(actions []*types.Action) bool {
	var attempts, failed int

	for _, a := range actions {
		if d.table.Class(a.Type) != enum.ActionClassVerification {
			continue
		}

		attempts++
		if a.Score < score.PositiveScore {
			failed++
		}
	}

	if attempts < d.cfg.ForgeryMinAttempts {
		return false
	}

	return float64(failed)/float64(attempts) > d.cfg.ForgeryFailRatio
}

// burst matches a run of near-perfect recent actions on top of a poor
// long-run history. This is exactly the "two perfect actions to unlock
// everything" attack the age-weighted scorer also resists.
func (d *Detector) burst(actions []*types.Action) bool {
	if len(actions) <= d.cfg.BurstWindow {
		return false
	}

	recent := actions[len(actions)-d.cfg.BurstWindow:]
	prior := actions[:len(actions)-d.cfg.BurstWindow]

	var high int

	for _, a := range recent {
		if a.Score >= d.cfg.BurstHighScore {
			high++
		}
	}

	if high < d.cfg.BurstMinHigh {
		return false
	}

	var priorSum float64
	for _, a := range prior {
		priorSum += a.Score
	}

	return priorSum/float64(len(prior)) < d.cfg.BurstPriorMean
}
