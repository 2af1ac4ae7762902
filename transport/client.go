// Copyright 2025 The memic-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/punithg/memic-go/core"
)

// Version is the client library version reported in the User-Agent header.
const Version = "0.2.0"

// DefaultIdentityPath resolves the organization behind an API key. Some
// deployments route identity through /sdk/me instead; see WithIdentityPath.
const DefaultIdentityPath = "/api-keys/me"

const userAgent = "memic-go/" + Version

// Client issues authenticated requests against the API and maps responses
// to typed errors. It is safe for concurrent use.
type Client struct {
	baseURL      string
	apiKey       string
	identityPath string
	timeout      time.Duration
	httpClient   *http.Client
	logger       *slog.Logger

	// Resolved once on first use, then cached for the client's lifetime.
	// Concurrent first accesses may each issue a redundant identity request;
	// the result is idempotent so the last write wins.
	orgId atomic.Pointer[string]
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the underlying HTTP client.
// Default is an http.Client bounded by the configured timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient != nil {
			c.httpClient = httpClient
		}
		return nil
	}
}

// WithIdentityPath overrides the endpoint used to resolve the organization
// identifier, for deployments that serve it at /sdk/me.
func WithIdentityPath(path string) Option {
	return func(c *Client) error {
		if path != "" {
			c.identityPath = path
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a transport client for the given base URL and API key.
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		identityPath: DefaultIdentityPath,
		timeout:      timeout,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do issues an authenticated request and returns the raw response body.
//
// Outcomes map as follows: network failure yields an *APIError wrapping the
// cause; 401/403 an *AuthError; 404 a *NotFoundError; any other status >= 400
// an *APIError carrying the status code and raw body; 204 an empty body.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("read response body: %v", err), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Message: errorMessage(resp.StatusCode, raw)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Message: errorMessage(resp.StatusCode, raw)}
	case resp.StatusCode >= 400:
		return nil, &APIError{
			Message:    errorMessage(resp.StatusCode, raw),
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	}

	return raw, nil
}

// DoJSON issues a request via Do and decodes the response body into out.
// A 204 response leaves out untouched.
func (c *Client) DoJSON(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	raw, err := c.Do(ctx, method, path, body, query)
	if err != nil {
		return err
	}
	if len(raw) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// OrgID returns the organization identifier behind the API key, resolving it
// via the identity endpoint on first use and caching it for the lifetime of
// the client.
func (c *Client) OrgID(ctx context.Context) (string, error) {
	if cached := c.orgId.Load(); cached != nil {
		return *cached, nil
	}

	var identity struct {
		OrganizationId core.ID `json:"organization_id"`
	}
	if err := c.DoJSON(ctx, http.MethodGet, c.identityPath, nil, nil, &identity); err != nil {
		return "", err
	}
	org := string(identity.OrganizationId)
	if org == "" {
		return "", ErrOrgIdMissing
	}

	c.logger.Debug("resolved organization", "org_id", org)
	c.orgId.Store(&org)
	return org, nil
}

// errorMessage extracts a human-readable message from an error response.
// Preference order: the detail field, the message field, the raw body text,
// then a fallback naming the status code.
func errorMessage(statusCode int, raw []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err == nil {
		if detail, ok := payload["detail"]; ok && detail != nil {
			return fmt.Sprintf("%v", detail)
		}
		if message, ok := payload["message"]; ok && message != nil {
			return fmt.Sprintf("%v", message)
		}
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
