// Package processor talks to the remote digest service's /process endpoint.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/valpere/vidsum/internal"
)

// maxErrorBody bounds how much of a failed response is kept on TransportError.
const maxErrorBody = 512

// Config describes how to reach the digest service.
type Config struct {
	BaseURL   string        `mapstructure:"server"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Client sends ProcessRequests to a digest service.
type Client struct {
	baseURL  string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// New builds a Client for cfg.BaseURL. A zero Timeout means no client-side
// timeout; callers bound the exchange through the context instead.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server URL must start with http or https: %q", cfg.BaseURL)
	}

	return &Client{
		baseURL:  base.String(),
		endpoint: base.JoinPath("process").String(),
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newDigestTransport(http.DefaultTransport.(*http.Transport).Clone(), cfg.UserAgent),
		},
		logger: logger.With().Str("component", "processor").Logger(),
	}, nil
}

// Endpoint returns the absolute /process URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Process performs one POST /process exchange. A non-2xx status yields a
// *TransportError; a body that is not JSON yields a decode error. A
// well-formed {"error": ...} body is returned as-is for the caller to judge.
func (c *Client) Process(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", req.VideoURL).Msg("request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("url", req.VideoURL).
		Msg("digest service responded")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out *internal.ProcessResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("failed to decode response: %w", errNullBody)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("failed to decode response: %w", errTrailingData)
	}

	return out, nil
}

// IsAvailable checks that the service answers its index page.
func (c *Client) IsAvailable(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{StatusCode: resp.StatusCode}
	}
	return nil
}
