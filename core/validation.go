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

import "fmt"

// ValidateFilters validates a MetadataFilters value according to API rules.
//
// Validation rules:
//   - PageNumber, if set, must be >= 1
//   - Every entry of PageNumbers must be >= 1
//   - PageRange bounds, if set, must be >= 1, and Gte must not exceed Lte
//     when both bounds are set
//
// A nil filter set is valid and serializes to an empty map.
func ValidateFilters(f *MetadataFilters) error {
	if f == nil {
		return nil
	}

	if f.PageNumber < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFilters, ErrInvalidPageNumber)
	}

	for _, n := range f.PageNumbers {
		if n < 1 {
			return fmt.Errorf("%w: %w", ErrInvalidFilters, ErrInvalidPageNumber)
		}
	}

	if f.PageRange != nil {
		if err := ValidatePageRange(f.PageRange); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFilters, err)
		}
	}

	return nil
}

// ValidatePageRange validates a PageRange according to API rules.
func ValidatePageRange(r *PageRange) error {
	if r == nil {
		return nil
	}
	if r.Gte < 0 || r.Lte < 0 {
		return fmt.Errorf("%w: bounds must be at least 1", ErrInvalidPageRange)
	}
	if r.Gte > 0 && r.Lte > 0 && r.Gte > r.Lte {
		return fmt.Errorf("%w: gte %d exceeds lte %d", ErrInvalidPageRange, r.Gte, r.Lte)
	}
	return nil
}
