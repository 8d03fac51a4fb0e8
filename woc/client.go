// Package woc is a client for the WhatsOnChain BSV REST API.
//
// A Client is bound to one network and one set of credentials. Each endpoint
// method forwards its parameters to one HTTP request and returns the decoded
// body, or one of *ServerError, *NetworkError and *RequestSetupError.
package woc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olgasafonova/whatsonchain-mcp-server/internal/base"
	"github.com/olgasafonova/whatsonchain-mcp-server/metrics"
	"github.com/olgasafonova/whatsonchain-mcp-server/tracing"
)

const (
	// APIRoot is the WhatsOnChain BSV API endpoint, followed by the network
	APIRoot = "https://api.whatsonchain.com/v1/bsv/"

	// DefaultTimeout bounds each request
	DefaultTimeout = 30 * time.Second

	// ThrottleInterval is the request spacing without an API key (about 3 req/s)
	ThrottleInterval = 334 * time.Millisecond

	// StatusSentinel is the body the status endpoint returns when healthy
	StatusSentinel = "Whats On Chain"
)

// Config holds client settings. It is fixed once the client is built.
type Config struct {
	Network     Network
	Timeout     time.Duration
	UserAgent   string
	APIKey      string
	EnableCache bool
	Profile     Profile
}

// DefaultConfig returns the settings New starts from for a network alias.
func DefaultConfig(network string) Config {
	return Config{
		Network:     ParseNetwork(network),
		Timeout:     DefaultTimeout,
		EnableCache: true,
		Profile:     ProfileCurrent,
	}
}

// Client provides access to the WhatsOnChain API for one network
type Client struct {
	*base.Client

	cfg         Config
	baseURL     string
	explorerURL string
	feeQuoteURL string
}

type settings struct {
	cfg         Config
	logger      *slog.Logger
	httpClient  *http.Client
	baseURL     string
	explorerURL string
}

// Option configures the Client
type Option func(*settings)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.cfg.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.cfg.UserAgent = ua
	}
}

// WithAPIKey authenticates requests and lifts client-side request spacing
func WithAPIKey(key string) Option {
	return func(s *settings) {
		s.cfg.APIKey = key
	}
}

// WithCache enables or disables the response cache
func WithCache(enabled bool) Option {
	return func(s *settings) {
		s.cfg.EnableCache = enabled
	}
}

// WithProfile selects the endpoint profile
func WithProfile(p Profile) Option {
	return func(s *settings) {
		s.cfg.Profile = p
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithHTTPClient sets a custom HTTP client. Its own timeout applies.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		s.httpClient = c
	}
}

// WithBaseURL overrides the API base URL (for testing)
func WithBaseURL(u string) Option {
	return func(s *settings) {
		s.baseURL = u
	}
}

// WithExplorerURL overrides the explorer host used for PDF downloads (for testing)
func WithExplorerURL(u string) Option {
	return func(s *settings) {
		s.explorerURL = u
	}
}

// New creates a client for a network alias. It performs no network I/O.
func New(network string, opts ...Option) *Client {
	return NewWithConfig(DefaultConfig(network), opts...)
}

// NewWithConfig creates a client from explicit settings. The network is
// normalized, a zero timeout becomes DefaultTimeout and an empty profile
// becomes ProfileCurrent. Every other field is used as given, so a zero
// Config runs with the cache off and no API key; start from DefaultConfig
// to get the cache.
func NewWithConfig(cfg Config, opts ...Option) *Client {
	s := &settings{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	cfg = s.cfg
	cfg.Network = ParseNetwork(string(cfg.Network))
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Profile == "" {
		cfg.Profile = ProfileCurrent
	}

	baseURL := s.baseURL
	if baseURL == "" {
		baseURL = APIRoot + cfg.Network.String() + "/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	explorerURL := s.explorerURL
	if explorerURL == "" {
		explorerURL = "https://" + cfg.Network.String() + ".whatsonchain.com"
	}
	explorerURL = strings.TrimSuffix(explorerURL, "/")

	feeQuoteURL := APIRoot + "main/mapi/feeQuotes"
	if s.baseURL != "" {
		feeQuoteURL = baseURL + "mapi/feeQuotes"
	}

	return &Client{
		Client:      base.NewClient(transportOptions(cfg, s)...),
		cfg:         cfg,
		baseURL:     baseURL,
		explorerURL: explorerURL,
		feeQuoteURL: feeQuoteURL,
	}
}

// transportOptions translates client settings into transport configuration.
func transportOptions(cfg Config, s *settings) []base.ClientOption {
	opts := []base.ClientOption{
		base.WithTimeout(cfg.Timeout),
		base.WithLogger(s.logger.With("network", cfg.Network.String())),
	}
	if s.httpClient != nil {
		opts = append(opts, base.WithHTTPClient(s.httpClient))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, base.WithHeader("User-Agent", cfg.UserAgent))
	}

	switch {
	case cfg.APIKey == "":
		opts = append(opts, base.WithThrottle(ThrottleInterval))
	case cfg.Profile == ProfileLegacy:
		opts = append(opts, base.WithHeader("woc-api-key", cfg.APIKey))
	default:
		opts = append(opts, base.WithHeader("Authorization", cfg.Network.authPrefix()+"_"+cfg.APIKey))
	}

	if !cfg.EnableCache {
		opts = append(opts, base.WithCache(nil))
	}
	return opts
}

// Config returns the client's settings
func (c *Client) Config() Config {
	return c.cfg
}

// Network returns the network the client is bound to
func (c *Client) Network() Network {
	return c.cfg.Network
}

// BaseURL returns the API base URL including the network segment
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint resolves path against the base URL. Absolute http(s) URLs are
// used as given. Query parameters with empty values are dropped.
func (c *Client) endpoint(path string, query url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.baseURL + strings.TrimPrefix(path, "/")
	}

	params := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			if v != "" {
				params.Add(k, v)
			}
		}
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// do sends one request and classifies failures into the three error kinds
func (c *Client) do(ctx context.Context, op string, cfg base.RequestConfig) (*base.Response, error) {
	network := c.cfg.Network.String()
	ctx, span := tracing.StartAPISpan(ctx, network, op, methodOrGet(cfg.Method))

	start := time.Now()
	resp, err := c.Client.Do(ctx, cfg)
	if err == nil && !resp.OK() {
		err = newServerError(resp.StatusCode, cfg.URL, resp.Body)
	}
	if err != nil {
		err = classify(cfg.URL, err)
	}

	kind := errorKind(err)
	metrics.RecordAPICall(network, op, time.Since(start).Seconds(), kind)

	outcome := tracing.APIOutcome{ErrorKind: kind, Err: err}
	if resp != nil {
		outcome.StatusCode = resp.StatusCode
		outcome.Cached = resp.Cached
		outcome.Shared = resp.Shared
	}
	tracing.EndAPISpan(span, outcome)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// classify maps transport failures onto the client's error kinds
func classify(reqURL string, err error) error {
	var se *ServerError
	if errors.As(err, &se) {
		return err
	}
	var te *base.TransportError
	if errors.As(err, &te) {
		return &NetworkError{URL: reqURL, Err: te.Err}
	}
	return &RequestSetupError{Err: err}
}

func methodOrGet(m string) string {
	if m == "" {
		return http.MethodGet
	}
	return m
}

// get issues a GET and returns the raw response
func (c *Client) get(ctx context.Context, op, path string, query url.Values) (*base.Response, error) {
	return c.do(ctx, op, base.RequestConfig{
		Method: http.MethodGet,
		URL:    c.endpoint(path, query),
	})
}

// getJSON issues a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	u := c.endpoint(path, query)
	resp, err := c.do(ctx, op, base.RequestConfig{Method: http.MethodGet, URL: u})
	if err != nil {
		return err
	}
	return decode(resp, u, out)
}

// getText issues a GET and returns the body as text
func (c *Client) getText(ctx context.Context, op, path string, query url.Values) (string, error) {
	resp, err := c.get(ctx, op, path, query)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// getBytes issues a GET and returns the body unchanged
func (c *Client) getBytes(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	resp, err := c.get(ctx, op, path, query)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// post issues a POST with a JSON body and returns the raw response and URL
func (c *Client) post(ctx context.Context, op, path string, query url.Values, body any) (*base.Response, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", &RequestSetupError{Err: fmt.Errorf("failed to encode request body: %w", err)}
	}

	u := c.endpoint(path, query)
	resp, err := c.do(ctx, op, base.RequestConfig{
		Method:      http.MethodPost,
		URL:         u,
		Body:        payload,
		ContentType: "application/json",
	})
	if err != nil {
		return nil, u, err
	}
	return resp, u, nil
}

// postJSON issues a POST with a JSON body and decodes the JSON response into out
func (c *Client) postJSON(ctx context.Context, op, path string, query url.Values, body, out any) error {
	resp, u, err := c.post(ctx, op, path, query, body)
	if err != nil {
		return err
	}
	return decode(resp, u, out)
}

// decode unmarshals a success body. A body that does not decode came from
// the server, so it is reported as a ServerError.
func decode(resp *base.Response, reqURL string, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], bytes.TrimSpace(resp.Body)...)
		if len(*raw) == 0 {
			*raw = json.RawMessage("null")
		}
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		se := newServerError(resp.StatusCode, reqURL, resp.Body)
		se.Message = fmt.Sprintf("malformed response body: %v", err)
		return se
	}
	return nil
}

// requireLegacy guards endpoints that only the legacy profile offers
func (c *Client) requireLegacy(name string) error {
	if c.cfg.Profile != ProfileLegacy {
		return &RequestSetupError{Err: fmt.Errorf("%s: %w", name, ErrLegacyOnly)}
	}
	return nil
}
