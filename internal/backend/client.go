// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

// Configuration constants for the desk assistant API.
const (
	// DefaultTimeout is the default timeout for API requests. Assistant
	// turns can take a while: the backend runs SQL against the warehouse
	// before answering.
	DefaultTimeout = 120 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for
	// transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay is the maximum delay for exponential backoff.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// DefaultAgentMode is sent when the caller does not pick one.
	DefaultAgentMode = "Balanced"
)

// sharedHTTPClient is the pooled HTTP client for all assistant requests.
// Connection pooling avoids a TCP handshake per turn.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for common backend failures.
var (
	// ErrNotConfigured indicates no backend URL is set.
	ErrNotConfigured = errors.New("backend URL not configured")

	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrResponseTooLarge indicates the response body hit the size cap.
	ErrResponseTooLarge = errors.New("response exceeded maximum size")
)

// APIError represents an error response from the assistant service.
type APIError struct {
	Detail string
	Status int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// askRequest is the wire shape of POST /ask.
type askRequest struct {
	Prompt    string `json:"question"`
	AgentMode string `json:"agentMode,omitempty"`
}

// askResponse is the wire shape of the /ask reply.
type askResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// apiErrorResponse is the service's error body shape.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// TurnResult is one completed assistant turn.
type TurnResult struct {
	// TurnID echoes the ID issued when the request was sent, so the UI
	// can drop a result that arrives after the turn was superseded.
	TurnID string

	// Response is the raw assistant text, ready for classification.
	Response string

	// Status is the service-reported status string ("success" normally).
	Status string
}

// Client is a client for the desk assistant service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	agentMode  string
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// produces a client whose requests fail with ErrNotConfigured.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpClient: sharedHTTPClient,
		agentMode:  DefaultAgentMode,
		maxRetries: DefaultMaxRetries,
		// One turn per second sustained, short bursts allowed. The UI
		// disables input during a turn anyway; this guards scripted use.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// WithAgentMode sets the agent mode sent with every prompt.
func (c *Client) WithAgentMode(mode string) *Client {
	if mode != "" {
		c.agentMode = mode
	}
	return c
}

// WithMaxRetries sets the maximum number of retry attempts.
func (c *Client) WithMaxRetries(maxRetries int) *Client {
	c.maxRetries = maxRetries
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	// Clone rather than mutate: the pooled client is shared.
	httpCopy := *c.httpClient
	httpCopy.Timeout = timeout
	c.httpClient = &httpCopy
	return c
}

// WithRateLimit overrides the client-side request rate.
func (c *Client) WithRateLimit(perSecond float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// IsConfigured reports whether a backend URL is set.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// BaseURL returns the configured service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewTurnID issues the ID for an outbound turn. The caller records it before
// sending so the eventual TurnResult can be matched or discarded.
func NewTurnID() string {
	return uuid.NewString()
}

// Ask sends one prompt and waits for the completed assistant turn.
//
// The prompt is NFC-normalized before sending so composed and decomposed
// input spellings hit the backend identically. Transient failures (5xx,
// 429, connection errors) are retried with exponential backoff; 4xx
// failures are not.
func (c *Client) Ask(ctx context.Context, turnID, prompt string) (*TurnResult, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := askRequest{
		Prompt:    norm.NFC.String(prompt),
		AgentMode: c.agentMode,
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateBackoff(attempt)
			log.Printf("[backend] retry %d/%d after %v: %v", attempt, c.maxRetries-1, delay, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.doAsk(ctx, reqBody)
		if err != nil {
			if isRetryable(err) {
				lastErr = err
				continue
			}
			return nil, err
		}

		result.TurnID = turnID
		return result, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// Health probes GET / and reports whether the service answered.
func (c *Client) Health(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

const userAgent = "deskchat/0.1.0"

// doAsk performs a single POST /ask round trip.
func (c *Client) doAsk(ctx context.Context, reqBody askRequest) (*TurnResult, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}
	log.Printf("[backend] POST /ask: %d (%v, %d bytes)", resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp.StatusCode, body)
	}

	var ar askResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &TurnResult{Response: ar.Response, Status: ar.Status}, nil
}

// readResponse reads the body with the size cap applied.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return body, nil
}

// errorFromResponse converts an HTTP error reply into a Go error.
func errorFromResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	detail := ""
	if err := json.Unmarshal(body, &apiErr); err == nil {
		detail = apiErr.Detail
	}

	if statusCode == http.StatusTooManyRequests {
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrRateLimited, detail)
		}
		return ErrRateLimited
	}

	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}
	return &APIError{Detail: detail, Status: statusCode}
}

// isRetryable determines if an error should trigger a retry.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	return false
}

// calculateBackoff returns the delay before the next retry attempt.
func calculateBackoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
