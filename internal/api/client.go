// Package api is the HTTP client for the Doubleword control layer's
// admin surface: OpenAI-compatible files, batches, and batch result
// listings, all cursor-paginated with limit/after parameters.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// defaultTimeout bounds every request; listing calls are small and a
// hung control layer should surface quickly.
const defaultTimeout = 30 * time.Second

// ErrNoServer is returned when a client is constructed without a base URL.
var ErrNoServer = errors.New("control layer server URL is required")

// APIError is a non-2xx response from the control layer.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("control layer returned %d", e.StatusCode)
	}
	return fmt.Sprintf("control layer returned %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope is the control layer's error body shape.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// listEnvelope is the OpenAI-compatible list response wrapper. The
// pagination engine derives has-more itself via the N+1 convention, so
// only Data is consumed by callers; the rest is decoded for
// completeness and debug logging.
type listEnvelope[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id,omitempty"`
	LastID  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more"`
}

// Client talks to one control layer instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client for the control layer at baseURL. apiKey
// may be empty for unauthenticated local deployments.
func NewClient(baseURL, apiKey string, logger zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoServer
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}, nil
}

// get performs a GET against path with the given query parameters and
// decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	requestID := ulid.Make().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("request_id", requestID).
		Str("path", path).
		Str("query", query.Encode()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("control layer request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError. A body that
// does not match the error envelope degrades to the status text.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var envelope errorEnvelope
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		apiErr.Type = envelope.Error.Type
	}
	return apiErr
}
