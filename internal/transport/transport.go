// Package transport performs the actual network fetches and downloads for
// the crawler. The engine consumes it as a narrow capability: fetch a page as
// text, or download a URL to a local file. Connection handling, redirects,
// and timeouts live here and nowhere else.
package transport

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"time"

	"golang.org/x/text/encoding/htmlindex"
)

// Default transport settings.
const (
	// DefaultTimeout bounds each individual request. Failed requests are
	// never retried, so a generous single-attempt timeout is preferred.
	DefaultTimeout = 15 * time.Second

	// DefaultDownloadTimeout bounds image downloads, which move more bytes
	// than page fetches.
	DefaultDownloadTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of a page body is read.
	// 5MB is sufficient for HTML while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies the crawler in HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) ArachnidaSpider/1.0"
)

// Client performs HTTP fetches and downloads with a fixed per-call timeout.
//
// Design decision: The user agent is explicit configuration on the client,
// not a process-wide global, so tests and per-site overrides can vary it.
type Client struct {
	// fetchClient is used for page fetches.
	fetchClient *http.Client

	// downloadClient is used for image downloads; it gets a longer timeout.
	downloadClient *http.Client

	// userAgent is sent as the User-Agent header on every request.
	userAgent string

	// maxBodySize limits the size of page bodies read into memory.
	maxBodySize int64

	// headers are extra headers added to every request, e.g. cookies or
	// auth tokens from per-host configuration.
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout for page fetches.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.fetchClient.Timeout = d
	}
}

// WithDownloadTimeout sets the per-request timeout for downloads.
func WithDownloadTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.downloadClient.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders adds extra headers to every request. User-Agent set this way
// is ignored; use WithUserAgent for that.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithMaxBodySize sets the maximum page body size to read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// NewClient creates a Client with default settings.
// Redirects are followed up to net/http's limit of ten hops.
func NewClient(opts ...Option) *Client {
	c := &Client{
		fetchClient:    &http.Client{Timeout: DefaultTimeout},
		downloadClient: &http.Client{Timeout: DefaultDownloadTimeout},
		userAgent:      DefaultUserAgent,
		maxBodySize:    DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchText fetches a page body as UTF-8 text. Network errors, timeouts, and
// non-2xx responses all fail the same way; the caller treats every failure as
// "page skipped".
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	c.applyHeaders(req)

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	reader := decodeCharset(io.LimitReader(resp.Body, c.maxBodySize), resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	return string(body), nil
}

// Download streams a URL to the destination path. On any failure the
// partially-written file is removed so a failed download leaves no trace.
func (c *Client) Download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	c.applyHeaders(req)

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	f, err := os.Create(dest) //nolint:gosec // Destination is derived from a sanitized filename
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()       //nolint:errcheck // Best effort cleanup
		_ = os.Remove(dest) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("write %s: %w", dest, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dest) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("close %s: %w", dest, err)
	}

	return nil
}

// applyHeaders adds the configured extra headers to a request. User-Agent is
// managed separately and never overridden here.
func (c *Client) applyHeaders(req *http.Request) {
	for k, v := range c.headers {
		if http.CanonicalHeaderKey(k) == "User-Agent" {
			continue
		}
		req.Header.Set(k, v)
	}
}

// decodeCharset wraps r with a decoder for the charset declared in the
// Content-Type header. Unknown or missing charsets fall back to reading the
// bytes as-is; this is best-effort, not validation.
func decodeCharset(r io.Reader, contentType string) io.Reader {
	if contentType == "" {
		return r
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return r
	}
	name, ok := params["charset"]
	if !ok || name == "" {
		return r
	}

	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return r
	}
	return enc.NewDecoder().Reader(r)
}
