// Package upstream holds the rate-limited client for the congress.gov API.
// Every call passes the local admission check before any network activity;
// only successful calls consume admission budget.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.congress.gov/v3"
	defaultTimeout = 30 * time.Second
)

// Limiter is the admission-control contract the client depends on. Acquire
// atomically reserves one admitted call; the returned release func refunds
// the reservation when the call fails.
type Limiter interface {
	Acquire(ctx context.Context) (func(context.Context) error, error)
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is the rate-limited HTTP client for the upstream service.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    Limiter
	logger     *slog.Logger
}

// NewClient creates a client. The limiter may be nil, which disables local
// admission control (upstream throttling still applies).
func NewClient(apiKey string, limiter Limiter, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		httpClient: http.DefaultClient,
		limiter:    limiter,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a single upstream call for the given path and passthrough
// query. The returned bytes are the raw JSON payload of a 2xx response.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var release func(context.Context) error
	if c.limiter != nil {
		var err error
		release, err = c.limiter.Acquire(ctx)
		if err != nil {
			return nil, err
		}
	}
	// Refund the reservation on any failure, so failed calls never consume
	// budget. The request context may already be expired by then.
	refund := func() {
		if release == nil {
			return
		}
		if err := release(context.Background()); err != nil {
			c.logger.Warn("failed to refund admission reservation",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("format", "json")
	q.Set("api_key", c.apiKey)

	callURL := c.baseURL + path + "?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, callURL, nil)
	if err != nil {
		refund()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "legis-gateway/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		refund()
		// Transport errors embed the full URL, credential included.
		msg := c.redact(err.Error())
		c.logger.Warn("upstream call got no response",
			slog.String("path", path),
			slog.String("error", msg),
		)
		return nil, classifyTransportFailure(msg)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		refund()
		return nil, classifyTransportFailure(c.redact(err.Error()))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		refund()
		c.logger.Warn("upstream call failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, classifyStatus(resp.StatusCode, c.redact(string(body)))
	}

	return body, nil
}

// redact removes the credential from any diagnostic text.
func (c *Client) redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, "[REDACTED]")
}
