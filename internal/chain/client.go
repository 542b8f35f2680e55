// Package chain talks to the external chain observer service that exposes
// per-user claim verification counts and wallet age.
package chain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lumivault/gatekeeper/internal/engine"
	"github.com/lumivault/gatekeeper/pkg/utils"
	"go.uber.org/zap"
)

// ErrObserverStatus is returned when the observer answers with a
// non-success HTTP status.
var ErrObserverStatus = errors.New("chain observer returned error status")

// Client fetches trust signals from the chain observer over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryOpts  utils.RetryOptions
	logger     *zap.Logger
}

// NewClient creates a chain observer client. The timeout bounds a single
// request; retries are governed separately by the backoff options.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryOpts: utils.GetChainRetryOptions(),
		logger:    logger.Named("chain"),
	}
}

// ChainTrust fetches the verification summary for one user. Transient
// failures are retried with exponential backoff; the caller's context still
// bounds the whole exchange.
func (c *Client) ChainTrust(ctx context.Context, userID string) (*engine.ChainTrust, error) {
	trust, err := utils.WithRetry(ctx, func() (*engine.ChainTrust, error) {
		return c.fetchTrust(ctx, userID)
	}, c.retryOpts)
	if err != nil {
		c.logger.Warn("Chain observer lookup failed",
			zap.String("userID", userID), zap.Error(err))

		return nil, err
	}

	return trust, nil
}

func (c *Client) fetchTrust(ctx context.Context, userID string) (*engine.ChainTrust, error) {
	url := fmt.Sprintf("%s/v1/trust/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach chain observer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrObserverStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read observer response: %w", err)
	}

	var trust engine.ChainTrust
	if err := sonic.Unmarshal(body, &trust); err != nil {
		return nil, fmt.Errorf("failed to parse observer response: %w", err)
	}

	return &trust, nil
}
