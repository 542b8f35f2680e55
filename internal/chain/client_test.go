package chain_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumivault/gatekeeper/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChainTrust(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/trust/user-1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verifiedClaims":8,"totalClaims":10,"walletAgeDays":400}`))
	}))
	defer server.Close()

	client := chain.NewClient(server.URL, "secret", time.Second, zap.NewNop())

	trust, err := client.ChainTrust(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), trust.VerifiedClaims)
	assert.Equal(t, int64(10), trust.TotalClaims)
	assert.InDelta(t, 400.0, trust.WalletAgeDays, 1e-9)
}

func TestChainTrustRetriesTransientFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		_, _ = w.Write([]byte(`{"verifiedClaims":1,"totalClaims":1,"walletAgeDays":30}`))
	}))
	defer server.Close()

	client := chain.NewClient(server.URL, "", time.Second, zap.NewNop())

	trust, err := client.ChainTrust(t.Context(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), trust.VerifiedClaims)
	assert.Equal(t, int64(3), calls.Load())
}

func TestChainTrustExhaustsRetries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := chain.NewClient(server.URL, "", time.Second, zap.NewNop())

	_, err := client.ChainTrust(t.Context(), "user-3")
	require.Error(t, err)
	require.ErrorIs(t, err, chain.ErrObserverStatus)
}
