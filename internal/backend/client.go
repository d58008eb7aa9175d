// Package backend is the HTTP client for the assistant API. Retrieval and
// answer generation live entirely behind these endpoints; this package only
// speaks their wire format.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eoralab/casechat/internal/domain"
	"go.uber.org/zap"
)

// Client talks to the assistant backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a backend client. A zero timeout leaves requests unbounded
// and relies on the transport's own limits.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Ask submits a question together with the session identifier. A non-2xx
// response with a parseable body becomes a *domain.BackendError; transport
// and decode failures are returned as-is.
func (c *Client) Ask(ctx context.Context, question, sessionID string) (*domain.AskResponse, error) {
	body, err := json.Marshal(domain.AskRequest{
		Question:  question,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ask", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("ask request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("error", errBody.Error),
		)
		return nil, &domain.BackendError{Status: resp.StatusCode, Message: errBody.Error}
	}

	var answer domain.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("failed to decode answer: %w", err)
	}

	c.logger.Info("answer received",
		zap.String("session_id", sessionID),
		zap.Int("sources", len(answer.Sources)),
	)
	return &answer, nil
}

// Stats reads knowledge base statistics.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.BackendError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var stats domain.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return &stats, nil
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*domain.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health domain.Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health: %w", err)
	}
	return &health, nil
}
