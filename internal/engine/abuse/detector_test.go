package abuse_test

import (
	"testing"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/abuse"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testTable() *score.Table {
	return score.NewTable(map[string]score.Policy{
		"upload":       {Score: 0.9, Class: enum.ActionClassContribution},
		"download":     {Score: 0.5, Class: enum.ActionClassRead},
		"verify_claim": {Score: 0.8, Class: enum.ActionClassVerification},
	}, 0.5)
}

func newDetector(t *testing.T) *abuse.Detector {
	t.Helper()
	return abuse.New(abuse.DefaultConfig(), testTable(), zap.NewNop())
}

func makeActions(now time.Time, spacing time.Duration, entries []struct {
	actionType string
	score      float64
},
) []*types.Action {
	actions := make([]*types.Action, len(entries))
	start := now.Add(-spacing * time.Duration(len(entries)-1))

	for i, e := range entries {
		actions[i] = &types.Action{
			UserID:     "user-1",
			Type:       e.actionType,
			Score:      e.score,
			OccurredAt: start.Add(spacing * time.Duration(i)),
		}
	}

	return actions
}

func TestScanEmptyHistory(t *testing.T) {
	t.Parallel()

	report := newDetector(t).Scan(nil, time.Now())

	assert.Empty(t, report.Flags)
	assert.Zero(t, report.TotalMisalignment)
	assert.False(t, report.ForceBlock)
}

func TestExtractionFlag(t *testing.T) {
	t.Parallel()

	now := time.Now()
	detector := newDetector(t)

	// 60 downloads in the last hour, no contributions.
	entries := make([]struct {
		actionType string
		score      float64
	}, 60)
	for i := range entries {
		entries[i] = struct {
			actionType string
			score      float64
		}{"download", 0.5}
	}

	report := detector.Scan(makeActions(now, 30*time.Second, entries), now)
	assert.Contains(t, report.Flags, abuse.FlagExtraction)

	// A single contribution inside the window clears the signature.
	entries[30].actionType = "upload"
	report = detector.Scan(makeActions(now, 30*time.Second, entries), now)
	assert.NotContains(t, report.Flags, abuse.FlagExtraction)
}

func TestAutomationFlag(t *testing.T) {
	t.Parallel()

	now := time.Now()
	detector := newDetector(t)

	// 80 actions spaced 500ms apart: well above one action per second.
	entries := make([]struct {
		actionType string
		score      float64
	}, 80)
	for i := range entries {
		entries[i] = struct {
			actionType string
			score      float64
		}{"upload", 0.9}
	}

	report := detector.Scan(makeActions(now, 500*time.Millisecond, entries), now)
	assert.Contains(t, report.Flags, abuse.FlagAutomation)

	// The same actions spaced a minute apart are human-plausible.
	report = detector.Scan(makeActions(now, time.Minute, entries), now)
	assert.NotContains(t, report.Flags, abuse.FlagAutomation)
}

func TestForgeryFlag(t *testing.T) {
	t.Parallel()

	now := time.Now()
	detector := newDetector(t)

	// 8 verification attempts, 6 failed.
	entries := make([]struct {
		actionType string
		score      float64
	}, 8)
	for i := range entries {
		s := 0.1
		if i >= 6 {
			s = 0.9
		}
		entries[i] = struct {
			actionType string
			score      float64
		}{"verify_claim", s}
	}

	report := detector.Scan(makeActions(now, time.Hour, entries), now)
	assert.Contains(t, report.Flags, abuse.FlagForgery)

	// Below the minimum attempt count the ratio is not meaningful.
	report = detector.Scan(makeActions(now, time.Hour, entries[:4]), now)
	assert.NotContains(t, report.Flags, abuse.FlagForgery)
}

func TestBurstFlag(t *testing.T) {
	t.Parallel()

	now := time.Now()
	detector := newDetector(t)

	// 20 poor actions followed by 9 near-perfect ones.
	entries := make([]struct {
		actionType string
		score      float64
	}, 0, 29)
	for range 20 {
		entries = append(entries, struct {
			actionType string
			score      float64
		}{"upload", 0.1})
	}
	for range 9 {
		entries = append(entries, struct {
			actionType string
			score      float64
		}{"upload", 1.0})
	}

	report := detector.Scan(makeActions(now, time.Hour, entries), now)
	assert.Contains(t, report.Flags, abuse.FlagBurst)

	// The same burst on top of a good history is not an attack.
	for i := range 20 {
		entries[i].score = 0.8
	}
	report = detector.Scan(makeActions(now, time.Hour, entries), now)
	assert.NotContains(t, report.Flags, abuse.FlagBurst)
}

func TestForceBlockThreshold(t *testing.T) {
	t.Parallel()

	now := time.Now()
	detector := newDetector(t)

	// Forgery alone weighs -0.4: not enough to force a block.
	entries := make([]struct {
		actionType string
		score      float64
	}, 8)
	for i := range entries {
		entries[i] = struct {
			actionType string
			score      float64
		}{"verify_claim", 0.1}
	}

	report := detector.Scan(makeActions(now, time.Hour, entries), now)
	assert.Contains(t, report.Flags, abuse.FlagForgery)
	assert.False(t, report.ForceBlock)

	// Forgery plus automation crosses -0.5 and forces the block: 70 failed
	// verification attempts fired 200ms apart.
	entries = make([]struct {
		actionType string
		score      float64
	}, 70)
	for i := range entries {
		entries[i] = struct {
			actionType string
			score      float64
		}{"verify_claim", 0.1}
	}

	report = detector.Scan(makeActions(now, 200*time.Millisecond, entries), now)
	assert.Contains(t, report.Flags, abuse.FlagForgery)
	assert.Contains(t, report.Flags, abuse.FlagAutomation)
	assert.True(t, report.ForceBlock)
	assert.Less(t, report.TotalMisalignment, -0.5)
}
