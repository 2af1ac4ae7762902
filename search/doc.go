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


// Package search implements the query flow against the organization-scoped
// search endpoint.
//
// A query is a single POST carrying the query text, result bounds, and an
// optional sparse metadata filter object. The heterogeneous response is
// mapped into typed results: an ordered list of semantic document chunks
// and, when the backend routes through a database connector, a structured
// tabular result with column metadata.
package search
