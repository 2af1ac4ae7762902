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

package upload

import (
	"errors"
	"fmt"

	"github.com/punithg/memic-go/core"
)

var (
	// ErrTransportRequired is returned when a transport client is not provided.
	ErrTransportRequired = errors.New("transport client required")

	// ErrFileNotFound indicates the local file path does not exist. It is
	// returned before any network call is made.
	ErrFileNotFound = errors.New("file not found")

	// ErrPollTimeout indicates the wait loop exceeded its deadline before
	// the file reached a terminal status.
	ErrPollTimeout = errors.New("timed out waiting for file to be ready")
)

// ProcessingError reports that the remote pipeline reached a terminal failed
// status while waiting for a file.
type ProcessingError struct {
	Status  core.FileStatus
	Message string // Server-provided error message, may be empty
}

func (e *ProcessingError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Sprintf("file processing failed with status %s: %s", e.Status, msg)
}
