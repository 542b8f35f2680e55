package config_test

import (
	"testing"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	t.Parallel()

	scoring := config.Scoring{
		DefaultScore: 0.5,
		Actions: map[string]config.ActionPolicy{
			"submit_review": {Score: 0.8, Class: "contribution"},
			"browse_feed":   {Score: 0.3, Class: "read"},
			"verify_claim":  {Score: 0.9, Class: "verification"},
		},
	}

	table, err := scoring.BuildTable()
	require.NoError(t, err)

	assert.InDelta(t, 0.8, table.Score("submit_review"), 1e-9)
	assert.Equal(t, enum.ActionClassContribution, table.Class("submit_review"))
	assert.Equal(t, enum.ActionClassRead, table.Class("browse_feed"))
	assert.Equal(t, enum.ActionClassVerification, table.Class("verify_claim"))

	// Unknown action types fall back to the default.
	assert.InDelta(t, 0.5, table.Score("unknown"), 1e-9)
	assert.Equal(t, enum.ActionClassNeutral, table.Class("unknown"))
}

func TestBuildTableRejectsUnknownClass(t *testing.T) {
	t.Parallel()

	scoring := config.Scoring{
		Actions: map[string]config.ActionPolicy{
			"submit_review": {Score: 0.8, Class: "bogus"},
		},
	}

	_, err := scoring.BuildTable()
	require.ErrorIs(t, err, config.ErrUnknownActionClass)
}

func TestDetectorConfigOverrides(t *testing.T) {
	t.Parallel()

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()

		var abuseCfg config.Abuse

		cfg := abuseCfg.DetectorConfig()
		assert.Equal(t, time.Hour, cfg.ExtractionWindow)
		assert.Equal(t, 50, cfg.ExtractionMaxReads)
		assert.Equal(t, time.Minute, cfg.AutomationWindow)
		assert.Equal(t, 60, cfg.AutomationMaxActions)
	})

	t.Run("overrides apply", func(t *testing.T) {
		t.Parallel()

		abuseCfg := config.Abuse{
			ExtractionWindowMinutes: 30,
			ExtractionMaxReads:      100,
			ForgeryFailRatio:        0.7,
		}

		cfg := abuseCfg.DetectorConfig()
		assert.Equal(t, 30*time.Minute, cfg.ExtractionWindow)
		assert.Equal(t, 100, cfg.ExtractionMaxReads)
		assert.InDelta(t, 0.7, cfg.ForgeryFailRatio, 1e-9)
		// Untouched values keep defaults.
		assert.Equal(t, 5, cfg.ForgeryMinAttempts)
	})
}
