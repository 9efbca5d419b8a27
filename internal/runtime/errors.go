// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrLaunch is the sentinel error wrapped by LaunchError.
	ErrLaunch = errors.New("launch generator")
	// ErrStreamRead is the sentinel error wrapped by StreamError.
	ErrStreamRead = errors.New("read generator stream")
	// ErrInterrupted is returned when the generator was killed by cancellation or timeout.
	ErrInterrupted = errors.New("generator interrupted")
	// ErrEmptyCommand is returned when the generator command has no words.
	ErrEmptyCommand = errors.New("empty generator command")
)

type (
	// LaunchError reports that the generator process could not be started.
	LaunchError struct {
		Command []string
		Err     error
	}

	// StreamError reports a failure reading one of the generator's output streams.
	StreamError struct {
		// Stream is "stdout" or "stderr".
		Stream string
		Err    error
	}
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", strings.Join(e.Command, " "), e.Err)
}

// Unwrap returns both ErrLaunch and the underlying cause.
func (e *LaunchError) Unwrap() []error { return []error{ErrLaunch, e.Err} }

// NotFound reports whether the generator binary could not be found.
func (e *LaunchError) NotFound() bool {
	return errors.Is(e.Err, exec.ErrNotFound)
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	return fmt.Sprintf("read generator %s: %v", e.Stream, e.Err)
}

// Unwrap returns both ErrStreamRead and the underlying cause.
func (e *StreamError) Unwrap() []error { return []error{ErrStreamRead, e.Err} }
