package cooldown_test

import (
	"testing"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/cooldown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationsAt(times ...time.Time) []*types.Violation {
	violations := make([]*types.Violation, len(times))
	for i, at := range times {
		violations[i] = &types.Violation{
			UserID:     "user-1",
			OccurredAt: at,
			Severity:   enum.SeverityModerate,
		}
	}
	return violations
}

func TestHoursSchedule(t *testing.T) {
	t.Parallel()

	expected := map[int]int{
		1:  24,
		2:  24,
		3:  48,
		4:  72,
		5:  120,
		6:  192,
		7:  312,
		8:  504,
		9:  816,
		10: 1320,
		11: 2136,
		12: 3456,
		13: 3456,
		20: 3456,
	}

	for count, hours := range expected {
		assert.Equal(t, hours, cooldown.Hours(count), "count %d", count)
	}

	assert.Zero(t, cooldown.Hours(0))
	assert.Zero(t, cooldown.Hours(-1))
}

func TestEvaluateClean(t *testing.T) {
	t.Parallel()

	status := cooldown.Evaluate(nil, time.Now())

	assert.Equal(t, enum.CooldownStateClean, status.State)
	assert.Zero(t, status.ViolationCount)
	assert.Nil(t, status.CooldownUntil)
	assert.Nil(t, status.LastViolationAt)
}

func TestEvaluateCooling(t *testing.T) {
	t.Parallel()

	now := time.Now()
	status := cooldown.Evaluate(violationsAt(now.Add(-time.Hour)), now)

	assert.Equal(t, enum.CooldownStateCooling, status.State)
	assert.Equal(t, 1, status.ViolationCount)
	require.NotNil(t, status.CooldownUntil)
	assert.WithinDuration(t, now.Add(23*time.Hour), *status.CooldownUntil, time.Second)
}

func TestEvaluateExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	status := cooldown.Evaluate(violationsAt(now.Add(-25*time.Hour)), now)

	assert.Equal(t, enum.CooldownStateClean, status.State)
	assert.Equal(t, 1, status.ViolationCount, "counter persists until the reset window passes")
	assert.Nil(t, status.CooldownUntil)
}

func TestEvaluateEscalation(t *testing.T) {
	t.Parallel()

	now := time.Now()

	// Third violation within the window escalates to 48 hours.
	status := cooldown.Evaluate(violationsAt(
		now.Add(-72*time.Hour),
		now.Add(-48*time.Hour),
		now.Add(-time.Hour),
	), now)

	assert.Equal(t, enum.CooldownStateCooling, status.State)
	assert.Equal(t, 3, status.ViolationCount)
	require.NotNil(t, status.CooldownUntil)
	assert.WithinDuration(t, now.Add(47*time.Hour), *status.CooldownUntil, time.Second)
}

func TestEvaluateCounterResetBetweenViolations(t *testing.T) {
	t.Parallel()

	now := time.Now()

	// Two old violations, then a 100-day gap: the counter restarts at one.
	status := cooldown.Evaluate(violationsAt(
		now.Add(-110*24*time.Hour),
		now.Add(-105*24*time.Hour),
		now.Add(-time.Hour),
	), now)

	assert.Equal(t, 1, status.ViolationCount)
	assert.Equal(t, 3, status.TotalViolations, "records are retained for audit")
	assert.Equal(t, enum.CooldownStateCooling, status.State)
	require.NotNil(t, status.CooldownUntil)
	assert.WithinDuration(t, now.Add(23*time.Hour), *status.CooldownUntil, time.Second)
}

func TestEvaluateCounterResetAfterQuietPeriod(t *testing.T) {
	t.Parallel()

	now := time.Now()
	status := cooldown.Evaluate(violationsAt(
		now.Add(-95*24*time.Hour),
		now.Add(-94*24*time.Hour),
	), now)

	assert.Equal(t, enum.CooldownStateClean, status.State)
	assert.Zero(t, status.ViolationCount, "counter resets after 90 violation-free days")
	assert.Equal(t, 2, status.TotalViolations)
}

func TestEvaluatePermanentBan(t *testing.T) {
	t.Parallel()

	now := time.Now()

	times := make([]time.Time, cooldown.PermanentBanCount)
	for i := range times {
		times[i] = now.Add(-time.Duration(cooldown.PermanentBanCount-i) * 24 * time.Hour)
	}

	status := cooldown.Evaluate(violationsAt(times...), now)
	assert.Equal(t, enum.CooldownStatePermanentlyBanned, status.State)

	// The ban is terminal: a long quiet period does not clear it.
	status = cooldown.Evaluate(violationsAt(times...), now.Add(200*24*time.Hour))
	assert.Equal(t, enum.CooldownStatePermanentlyBanned, status.State)
	assert.Equal(t, cooldown.PermanentBanCount, status.ViolationCount)
}
