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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidFilters indicates a MetadataFilters value failed validation.
	ErrInvalidFilters = errors.New("invalid metadata filters")

	// ErrInvalidPageNumber indicates a page number below 1.
	ErrInvalidPageNumber = errors.New("page number must be at least 1")

	// ErrInvalidPageRange indicates a page range with invalid bounds.
	ErrInvalidPageRange = errors.New("invalid page range")

	// ErrMalformedResponse indicates an API response that could not be decoded.
	ErrMalformedResponse = errors.New("malformed API response")
)
