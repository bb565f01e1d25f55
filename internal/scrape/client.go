// Package scrape fetches aircraft data and image metadata from external
// sites: EUROCONTROL, Wikipedia, the Aviation Stack API and Wikimedia
// Commons.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/target/aircraft-catalog/internal/observability/metrics"
	"github.com/target/aircraft-catalog/internal/observability/statsd"
)

const (
	// DefaultUserAgent identifies the catalog to upstream sites.
	DefaultUserAgent = "aircraft-catalog/1.0 (+https://github.com/target/aircraft-catalog)"
	defaultTimeout   = 30 * time.Second
	maxBodyBytes     = 8 << 20
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	Source    string        // metric tag, e.g. "wikipedia"
	UserAgent string        // defaults to DefaultUserAgent
	Timeout   time.Duration // per request; defaults to 30s
	// Interval is the minimum spacing between requests. Zero disables pacing.
	Interval   time.Duration
	HTTPClient *http.Client
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// Client is a paced HTTP client shared by the scrapers. It is safe for
// concurrent use.
type Client struct {
	source    string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	metrics   statsd.Sink
	logger    *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts ClientOptions) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		source:    opts.Source,
		userAgent: ua,
		http:      hc,
		limiter:   rate.NewLimiter(limit, 1),
		metrics:   opts.Metrics,
		logger:    logger.With("component", "scrape", "source", opts.Source),
	}
}

// Get fetches url and returns the body. Non-2xx responses yield a
// *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// FetchDocument fetches url and parses it as HTML.
func (c *Client) FetchDocument(ctx context.Context, url string) (*html.Node, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// GetJSON fetches url and decodes the JSON body into dst.
func (c *Client) GetJSON(ctx context.Context, url string, dst any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Exists sends a HEAD request and reports whether it returned 200.
func (c *Client) Exists(ctx context.Context, url string) (bool, error) {
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return false, nil
		}
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if err == nil {
		status = resp.StatusCode
		if status < 200 || status > 299 {
			resp.Body.Close()
			err = &StatusError{URL: url, Code: status}
		}
	}
	metrics.EmitScrape(c.metrics, metrics.ScrapeMetric{
		Source:   c.source,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "method", method, "url", url, "error", err)
		return nil, err
	}
	return resp, nil
}
