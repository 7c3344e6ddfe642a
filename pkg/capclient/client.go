// Package capclient is a small client for the gateway's capability-scoped
// orchestration endpoint. It is the consumer-side home of status
// normalization: callers may pass any token from the client vocabulary,
// including presentation-only tabs, and only backend-recognized filters reach
// the wire.
package capclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/capgate/capgate/pkg/status"
)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks to a capgate instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the gateway at baseURL.
func New(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListOptions filter an orchestration listing. Status accepts the full
// client vocabulary; presentation-only tabs (active, expired, completed)
// normalize to "no filter" and the parameter is omitted entirely.
type ListOptions struct {
	Status status.Token
	Limit  int
}

// Orchestration fetches the orchestration listing for a capability key and
// returns the backend's body verbatim. Non-2xx responses become errors
// carrying the status and body.
func (c *Client) Orchestration(ctx context.Context, key string, opts *ListOptions) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("capability key is required")
	}

	q := url.Values{}
	if opts != nil {
		if tok, ok := status.Normalize(opts.Status); ok {
			q.Set("status", string(tok))
		}
		if opts.Limit > 0 {
			q.Set("limit", strconv.Itoa(opts.Limit))
		}
	}

	target := c.baseURL + "/api/capability/" + url.PathEscape(key) + "/orchestration"
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
