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

package memic

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/punithg/memic-go/transport"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://app.memic.ai"

	// DefaultTimeout bounds ordinary API calls. The direct storage PUT
	// during uploads uses a longer timeout; see the upload package.
	DefaultTimeout = 30 * time.Second

	// EnvAPIKey is the environment variable consulted when no API key is
	// passed explicitly.
	EnvAPIKey = "MEMIC_API_KEY"

	// EnvBaseURL is the environment variable consulted when no base URL is
	// passed explicitly.
	EnvBaseURL = "MEMIC_BASE_URL"
)

// Config holds configuration for a Client.
type Config struct {
	// APIKey authenticates every request. Mandatory, from either an
	// explicit option or the MEMIC_API_KEY environment variable.
	APIKey string

	// BaseURL is the API endpoint. Trailing slashes are stripped.
	BaseURL string

	// IdentityPath is the endpoint used to resolve the organization behind
	// the API key. Defaults to /api-keys/me; some deployments route it
	// through /sdk/me.
	IdentityPath string

	// Timeout bounds each API request.
	Timeout time.Duration

	// PollInterval is the default pause between upload status checks.
	PollInterval time.Duration

	// PollTimeout is the default deadline for waiting on a file.
	PollTimeout time.Duration

	// HTTPClient, when set, replaces the default API HTTP client.
	HTTPClient *http.Client

	// Logger, when set, replaces slog.Default() across all flows.
	Logger *slog.Logger
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(apiKey string) ConfigOption {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithBaseURL overrides the API base URL (for development or self-hosted
// deployments).
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithIdentityPath overrides the identity endpoint used for organization
// resolution.
func WithIdentityPath(path string) ConfigOption {
	return func(c *Config) {
		c.IdentityPath = path
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithPollInterval sets the default pause between upload status checks.
func WithPollInterval(interval time.Duration) ConfigOption {
	return func(c *Config) {
		if interval > 0 {
			c.PollInterval = interval
		}
	}
}

// WithPollTimeout sets the default deadline for waiting on a file.
func WithPollTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		if timeout > 0 {
			c.PollTimeout = timeout
		}
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the logger used across all flows.
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns a Config populated from the environment where
// possible: the API key from MEMIC_API_KEY and the base URL from
// MEMIC_BASE_URL, falling back to the production endpoint.
func DefaultConfig() *Config {
	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Config{
		APIKey:       os.Getenv(EnvAPIKey),
		BaseURL:      baseURL,
		IdentityPath: transport.DefaultIdentityPath,
		Timeout:      DefaultTimeout,
	}
}

// NewConfig creates a Config with environment-derived defaults and applies
// the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration into canonical form: the base URL loses
// any trailing slash and the identity path gains a leading one.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.IdentityPath != "" && !strings.HasPrefix(c.IdentityPath, "/") {
		c.IdentityPath = "/" + c.IdentityPath
	}
	if c.IdentityPath == "" {
		c.IdentityPath = transport.DefaultIdentityPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is complete. It normalizes the
// configuration first.
func (c *Config) Validate() error {
	c.Normalize()
	if c.APIKey == "" {
		return transport.ErrAPIKeyRequired
	}
	if c.BaseURL == "" {
		return transport.ErrBaseURLRequired
	}
	return nil
}
