// Package http provides HTTP clients for package registry license lookups
// and for the GitHub Licenses API. Each registry gets its own client; the
// Registry multiplexer routes a dependency to the right one by ecosystem.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/feluda-dev/feluda"
)

// DefaultTimeout is the default timeout for registry requests.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies feluda to registries that require a
// descriptive User-Agent, such as crates.io.
const DefaultUserAgent = "feluda (github.com/feluda-dev/feluda)"

// settings holds the configuration shared by all registry clients.
type settings struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// Option configures a registry client.
type Option func(*settings)

// WithTimeout sets the timeout for registry requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithBaseURL overrides the registry base URL. Used in tests to point a
// client at a local server.
func WithBaseURL(u string) Option {
	return func(s *settings) {
		s.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		s.client = c
	}
}

func newSettings(baseURL string, opts ...Option) settings {
	s := settings{
		baseURL: baseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	if s.userAgent == "" {
		s.userAgent = DefaultUserAgent
	}
	return s
}

// hostOf returns the host of baseURL for rate-limiting purposes, falling
// back to the canonical registry host when the URL cannot be parsed.
func hostOf(baseURL, fallback string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return fallback
	}
	return u.Host
}

// getJSON performs a GET request and decodes the JSON response into out.
// A 404 maps to ENOTFOUND and any other non-200 status to EUNAVAILABLE.
func (s *settings) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return feluda.Errorf(feluda.ENOTFOUND, "GET %s: not found", url)
	case resp.StatusCode != http.StatusOK:
		return feluda.Errorf(feluda.EUNAVAILABLE, "GET %s: HTTP %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return feluda.Errorf(feluda.EUNAVAILABLE, "GET %s: decode response: %v", url, err)
	}
	return nil
}
