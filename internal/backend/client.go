// Package backend provides the outbound HTTP client used to reach the
// orchestration backend. The client exists so that timeout policy is an
// explicit knob rather than something inherited from ambient defaults, and
// so tests can substitute the transport.
package backend

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single outbound call. There is deliberately no
// retry: the gateway relays exactly one backend response per inbound request.
const DefaultTimeout = 30 * time.Second

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, replacing the default transport
// and its timeout. Used by tests to install a recording transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
// Non-positive values keep the current timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// Client issues single outbound requests to the orchestration backend.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a backend client with DefaultTimeout unless overridden.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends one request and returns the backend's response. The caller owns
// the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Timeout reports the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
