// Package ready is an HTTP client for the readiness API. It implements
// tracker.Service so the CLI and TUI can run against a remote server.
package ready

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/garrettladley/ready/internal/version"
	"github.com/garrettladley/ready/internal/xslog"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type Option func(*clientConfig)

// WithHTTPClient replaces the underlying client. Its transport is wrapped.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// WithRateLimit throttles outgoing requests to r per second with the given
// burst, waiting rather than failing when the budget is spent.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(cfg *clientConfig) { cfg.limiter = rate.NewLimiter(r, burst) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{}
	if cfg.httpClient != nil {
		*httpClient = *cfg.httpClient
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = &readyTransport{base: base, userAgent: "ready/" + version.Get()}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = cfg.timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    cfg.limiter,
		logger:     cfg.logger,
	}
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := go_json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "api request",
		xslog.RequestMethod(req),
		xslog.RequestPath(req),
		xslog.HTTPStatus(resp.StatusCode),
		xslog.Duration(time.Since(start)))

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if err := go_json.Unmarshal(b, result); err != nil {
			return fmt.Errorf("decoding response: %w\nbody: %s", err, string(b))
		}
	}

	return nil
}

type readyTransport struct {
	base      http.RoundTripper
	userAgent string
}

var _ http.RoundTripper = (*readyTransport)(nil)

func (t *readyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}
