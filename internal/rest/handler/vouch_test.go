package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine"
	"github.com/lumivault/gatekeeper/internal/engine/abuse"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"github.com/lumivault/gatekeeper/internal/rest/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// fakeSources feeds the engine fixed data for handler tests.
type fakeSources struct {
	actions    []*types.Action
	violations []*types.Violation
}

func (f *fakeSources) UserActions(_ context.Context, _ string) ([]*types.Action, error) {
	return f.actions, nil
}

func (f *fakeSources) UserViolations(_ context.Context, _ string) ([]*types.Violation, error) {
	return f.violations, nil
}

func (f *fakeSources) ActiveVouchCount(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func (f *fakeSources) ChainTrust(_ context.Context, _ string) (*engine.ChainTrust, error) {
	return &engine.ChainTrust{}, nil
}

func newVouchTestEngine(sources *fakeSources) *engine.Engine {
	logger := zap.NewNop()
	table := score.NewTable(map[string]score.Policy{
		"upload": {Score: 0.9, Class: enum.ActionClassContribution},
	}, 0.5)

	return engine.New(engine.Params{
		Actions:    sources,
		Violations: sources,
		Vouches:    sources,
		Chain:      sources,
		Table:      table,
		Detector:   abuse.New(abuse.DefaultConfig(), table, logger),
		Logger:     logger,
	})
}

func postVouch(t *testing.T, h *handler.VouchHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/vouches", strings.NewReader(body))

	require.NoError(t, h.CreateVouch(w, bunrouter.NewRequest(req)))

	return w
}

func TestCreateVouchRequiresTopTier(t *testing.T) {
	t.Parallel()

	t.Run("gated issuer is forbidden", func(t *testing.T) {
		t.Parallel()

		// Three actions: far below the history gate, tier lands at Partial.
		// The database must never be reached.
		now := time.Now()
		sources := &fakeSources{}
		for i := range 3 {
			sources.actions = append(sources.actions, &types.Action{
				UserID:     "newcomer",
				Type:       "upload",
				Score:      0.9,
				OccurredAt: now.Add(-time.Duration(3-i) * time.Hour),
			})
		}

		h := handler.NewVouchHandler(nil, newVouchTestEngine(sources), zap.NewNop())

		w := postVouch(t, h, `{"fromUser":"newcomer","toUser":"friend"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cooling issuer is forbidden", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		sources := &fakeSources{
			violations: []*types.Violation{{
				UserID:     "offender",
				OccurredAt: now.Add(-time.Hour),
				Severity:   enum.SeveritySevere,
			}},
		}

		h := handler.NewVouchHandler(nil, newVouchTestEngine(sources), zap.NewNop())

		w := postVouch(t, h, `{"fromUser":"offender","toUser":"friend"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
