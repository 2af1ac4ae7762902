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

import "errors"

var (
	// ErrAPIKeyRequired is returned when no API key is provided.
	ErrAPIKeyRequired = errors.New("no API key provided: pass an API key or set the MEMIC_API_KEY environment variable")

	// ErrBaseURLRequired is returned when no base URL is provided.
	ErrBaseURLRequired = errors.New("base URL required")

	// ErrOrgIdMissing is returned when the identity endpoint response lacks
	// an organization identifier.
	ErrOrgIdMissing = errors.New("identity response missing organization_id")
)

// AuthError reports rejected or missing credentials (HTTP 401/403).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// NotFoundError reports a missing resource (HTTP 404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "resource not found"
	}
	return e.Message
}

// APIError reports any other request failure: an HTTP response with status
// >= 400, or a network-level failure before a response was received. For
// HTTP failures StatusCode and Body carry the raw diagnostics; for network
// failures Err wraps the underlying cause.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}
