package reader

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"feedme/core/feed"
	"feedme/core/resilience"

	"go.uber.org/zap"
)

// readingListPath is appended to Config.BaseURL.
const readingListPath = "/atom/user/-/state/com.google/reading-list"

// Client fetches reading-list pages over HTTP.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *resilience.Breaker
	retry   resilience.RetryConfig
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry replaces the default retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *resilience.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// WithClock sets the time source for the ck cache-busting parameter.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client for cfg.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		cfg:     cfg,
		http:    newHTTPClient(cfg),
		breaker: resilience.NewBreaker(resilience.DefaultBreakerConfig("reader"), logger),
		retry:   resilience.DefaultRetryConfig(),
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClient has no overall timeout: the body is streamed into the parser
// after Fetch returns, so only setup and header waits are bounded here.
func newHTTPClient(cfg Config) *http.Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
		},
	}
}

// Fetch requests one page. The returned body must be closed by the caller.
func (c *Client) Fetch(ctx context.Context, req feed.FetchRequest) (*feed.Page, error) {
	if c.cfg.AuthToken == "" {
		return nil, ErrMissingAuthToken
	}

	uri, err := c.pageURL(req.Continuation)
	if err != nil {
		return nil, err
	}

	var page *feed.Page
	err = resilience.Retry(ctx, c.retry, c.logger, func() error {
		return c.breaker.Do(func() error {
			p, err := c.do(ctx, uri)
			if err != nil {
				return err
			}
			page = p
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading list: %w", err)
	}

	return page, nil
}

func (c *Client) pageURL(continuation string) (string, error) {
	base, err := url.Parse(strings.TrimRight(c.cfg.BaseURL, "/") + readingListPath)
	if err != nil {
		return "", fmt.Errorf("invalid reader base url: %w", err)
	}

	n := c.cfg.ItemsPerFetch
	if n <= 0 {
		n = 50
	}

	q := url.Values{}
	q.Set("client", c.cfg.ClientID)
	q.Set("n", strconv.Itoa(n))
	q.Set("ck", strconv.FormatInt(c.now().UnixMilli(), 10))
	if continuation != "" {
		q.Set("c", continuation)
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

func (c *Client) do(ctx context.Context, uri string) (*feed.Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "GoogleLogin auth="+c.cfg.AuthToken)
	httpReq.Header.Set("Accept", "application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	if c.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		_ = resp.Body.Close()
		return nil, &RequestError{URI: uri, StatusCode: resp.StatusCode}
	}

	c.logger.Debug("Fetched reading list page",
		zap.String("uri", uri),
		zap.String("content_type", resp.Header.Get("Content-Type")),
	)

	return &feed.Page{
		Body:     resp.Body,
		Encoding: charsetOf(resp.Header.Get("Content-Type")),
	}, nil
}

// charsetOf returns the charset parameter of a Content-Type value, or "".
func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
