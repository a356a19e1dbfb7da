// Package http provides an HTTP implementation of cssdocs.Fetcher for
// querying the ask API.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/cssdocs"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for a single request.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool to the API host.
const DefaultUserAgent = "cssdocs/1.0"

var _ cssdocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves response bodies over HTTP GET.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit paces requests to at most r per second. A zero or
// infinite limit disables pacing.
func WithRateLimit(r rate.Limit) Option {
	return func(f *Fetcher) {
		if r <= 0 || r == rate.Inf {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(r, 1)
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch returns the body of url. Network failures, timeouts and non-200
// responses are reported as ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", cssdocs.Errorf(cssdocs.ETRANSPORT, "%v", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", cssdocs.Errorf(cssdocs.EINVALID, "invalid request url: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", cssdocs.Errorf(cssdocs.ETRANSPORT, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", cssdocs.Errorf(cssdocs.ETRANSPORT, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", cssdocs.Errorf(cssdocs.ETRANSPORT, "read body: %v", err)
	}

	return string(body), nil
}

// Close releases resources. It is a no-op for the HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}
