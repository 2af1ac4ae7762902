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

package search

import "errors"

var (
	// ErrTransportRequired is returned when a transport client is not provided.
	ErrTransportRequired = errors.New("transport client required")

	// ErrEmptyQuery is returned when the query string is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidTopK is returned when top_k is below 1.
	ErrInvalidTopK = errors.New("top_k must be at least 1")

	// ErrInvalidMinScore is returned when min_score is outside [0, 1].
	ErrInvalidMinScore = errors.New("min_score must be between 0 and 1")
)
