// Package base provides the shared HTTP transport for the WhatsOnChain client.
package base

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/olgasafonova/whatsonchain-mcp-server/internal/infra"
	"github.com/olgasafonova/whatsonchain-mcp-server/metrics"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// MaxConcurrentRequests limits parallel API calls
	MaxConcurrentRequests = 5
)

// Client provides HTTP transport with default headers, request spacing,
// response caching and coalescing of identical GETs.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Cache      *infra.Cache // nil disables caching and coalescing
	Dedup      *infra.RequestDeduplicator
	Throttle   *infra.Throttle
	Semaphore  chan struct{}
	Headers    http.Header
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithTimeout replaces the HTTP client with one bounded by timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(timeout)
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithCache sets a custom cache. A nil cache disables caching.
func WithCache(c *infra.Cache) ClientOption {
	return func(client *Client) {
		client.Cache = c
	}
}

// WithThrottle sets the minimum spacing between dispatched requests
func WithThrottle(interval time.Duration) ClientOption {
	return func(client *Client) {
		client.Throttle = infra.NewThrottle(interval)
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) ClientOption {
	return func(client *Client) {
		client.Headers.Set(key, value)
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
		Cache:      infra.NewCache(infra.DefaultMaxCacheEntries, 0),
		Dedup:      infra.NewRequestDeduplicator(),
		Throttle:   infra.NewThrottle(0),
		Semaphore:  make(chan struct{}, MaxConcurrentRequests),
		Headers:    http.Header{"Cache-Control": {"no-cache"}},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases resources held by the client
func (c *Client) Close() {
	if c.Cache != nil {
		c.Cache.Close()
	}
}

// DedupStats returns the number of in-flight deduplicated requests
func (c *Client) DedupStats() int {
	return c.Dedup.Stats()
}

// AcquireSlot blocks until a request slot is available or context is canceled
func (c *Client) AcquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}
}

// ReleaseSlot releases a request slot
func (c *Client) ReleaseSlot() {
	<-c.Semaphore
}

// RequestConfig configures a single HTTP request
type RequestConfig struct {
	Method      string // defaults to GET
	URL         string
	Body        []byte
	ContentType string
	Accept      string
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Cached     bool // served from the response cache
	Shared     bool // served by another caller's identical request
}

// OK reports whether the status code is 2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TransportError reports a request that was dispatched but produced no
// usable response: connection failures, timeouts and body read failures.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CacheKey returns the cache key for a request
func CacheKey(method, url string) string {
	return method + " " + url
}

// clone copies the response so the caller may modify Body and Header
func (r *Response) clone() *Response {
	out := *r
	out.Header = r.Header.Clone()
	out.Body = bytes.Clone(r.Body)
	return &out
}

// Do performs an HTTP request. Successful GET responses are cached when a
// cache is configured, and identical concurrent GETs share one dispatch.
// Every caller receives its own copy of the response.
// Non-2xx responses are returned without error; the caller interprets them.
// Errors are *TransportError when the round trip failed and plain errors
// when the request could not be built or dispatched.
func (c *Client) Do(ctx context.Context, cfg RequestConfig) (*Response, error) {
	if cfg.Method == "" {
		cfg.Method = http.MethodGet
	}

	if cfg.Method != http.MethodGet || c.Cache == nil {
		return c.dispatch(ctx, cfg)
	}

	key := CacheKey(cfg.Method, cfg.URL)
	if v, ok := c.Cache.Get(key); ok {
		c.Logger.Debug("Cache hit", "url", cfg.URL)
		resp := v.(*Response).clone()
		resp.Cached = true
		return resp, nil
	}

	// The shared dispatch outlives any one caller; each caller still
	// returns early on its own ctx inside Dedup.Do.
	flightCtx := context.WithoutCancel(ctx)
	v, shared, err := c.Dedup.Do(ctx, key, func() (any, error) {
		resp, err := c.dispatch(flightCtx, cfg)
		if err != nil {
			return nil, err
		}
		if resp.OK() {
			c.Cache.Set(key, resp.clone())
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp := v.(*Response).clone()
	if shared {
		metrics.CoalescedRequests.Inc()
		resp.Shared = true
	}
	return resp, nil
}

// dispatch takes a request slot, waits for the throttle, then sends the
// request. Queued requests therefore leave the throttle one at a time.
func (c *Client) dispatch(ctx context.Context, cfg RequestConfig) (*Response, error) {
	if err := c.AcquireSlot(ctx); err != nil {
		return nil, err
	}
	defer c.ReleaseSlot()

	var body io.Reader
	if cfg.Body != nil {
		body = bytes.NewReader(cfg.Body)
	}
	req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range c.Headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	if cfg.ContentType != "" {
		req.Header.Set("Content-Type", cfg.ContentType)
	}
	if cfg.Accept != "" {
		req.Header.Set("Accept", cfg.Accept)
	}

	waited, err := c.Throttle.Wait(ctx)
	metrics.RecordThrottleWait(waited)
	if err != nil {
		return nil, fmt.Errorf("waiting for request throttle: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("API request failed",
			"method", cfg.Method,
			"url", cfg.URL,
			"error", err)
		return nil, &TransportError{Method: cfg.Method, URL: cfg.URL, Err: err}
	}

	data, err := readAndClose(resp)
	if err != nil {
		c.Logger.Warn("Failed to read API response",
			"method", cfg.Method,
			"url", cfg.URL,
			"error", err)
		return nil, &TransportError{Method: cfg.Method, URL: cfg.URL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		c.Logger.Debug("API returned error status",
			"method", cfg.Method,
			"url", cfg.URL,
			"status", resp.StatusCode,
			"body", truncate(string(data), 200))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
