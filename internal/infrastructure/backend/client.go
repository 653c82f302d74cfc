// internal/infrastructure/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/metrics"
)

const responseBodyReadLimit int64 = 4 << 20

// ErrUnreachable wraps transport failures and responses that are not valid JSON
var ErrUnreachable = errors.New("backend unreachable")

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// HasMessage reports whether the backend sent a structured error message
func (e *APIError) HasMessage() bool {
	return e.Message != ""
}

// AsAPIError unwraps err into an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

// errorBody is the backend's failure envelope: {"success": false, "message": "..."}
type errorBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Requester is the slice of the client that domain services depend on
type Requester interface {
	Get(ctx context.Context, path, token string, out any) error
	Post(ctx context.Context, path, token string, in, out any) error
	Delete(ctx context.Context, path, token string, out any) error
}

// Client talks JSON to the storefront REST backend
type Client struct {
	httpClient   *http.Client
	baseURL      string
	logger       *logrus.Logger
	metrics      *metrics.BackendMetrics
	newRequestID func() string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every request on m.
func WithMetrics(m *metrics.BackendMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a backend client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("backend endpoint is required")
	}

	client := &Client{
		baseURL:      trimmed,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		newRequestID: uuid.NewString,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.logger == nil {
		client.logger = logrus.New()
		client.logger.SetOutput(io.Discard)
	}

	return client, nil
}

// BaseURL returns the endpoint the client is rooted at
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.Do(ctx, http.MethodGet, path, token, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path, token string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, token, in, out)
}

// Delete issues a DELETE and decodes the response into out
func (c *Client) Delete(ctx context.Context, path, token string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, token, nil, out)
}

// Do performs one request. Non-2xx responses become *APIError; transport
// failures and undecodable bodies wrap ErrUnreachable. out may be nil.
func (c *Client) Do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}
	requestID := c.newRequestID()
	req.Header.Set("X-Request-ID", requestID)

	entry := c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(method, path, 0, time.Since(start))
		entry.WithError(err).Warn("backend request failed")
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	elapsed := time.Since(start)
	c.metrics.Observe(method, path, resp.StatusCode, elapsed)
	entry = entry.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"latency":     elapsed,
	})
	if err != nil {
		entry.WithError(err).Warn("failed to read backend response")
		return fmt.Errorf("%w: failed to read response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope errorBody
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Message
		}
		entry.WithField("error", apiErr.Message).Debug("backend request completed with error status")
		return apiErr
	}

	entry.Debug("backend request completed")

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid JSON from %s %s: %v", ErrUnreachable, method, path, err)
	}
	return nil
}
