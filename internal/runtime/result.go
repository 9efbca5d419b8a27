// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"time"
)

// Result describes one generator run.
type Result struct {
	// ExitCode is the generator's exit status. It is 1 when the process
	// could not be launched or did not exit normally.
	ExitCode ExitCode
	// Error is a *LaunchError, or wraps ErrInterrupted; nil when the process
	// ran to completion, whatever its exit status.
	Error error
	// StdoutLines and StderrLines count the lines forwarded to the sink.
	StdoutLines int
	StderrLines int
	// StreamErrors holds *StreamError values for forwarders that ended early.
	StreamErrors []error
	// DrainTimedOut is set when a stream stayed open past the drain timeout,
	// typically because a grandchild process inherited it.
	DrainTimedOut bool
	// Duration is the wall time from launch to forwarder join.
	Duration time.Duration
}

// newErrorResult creates a Result for a run that failed before or during execution.
func newErrorResult(err error) *Result {
	return &Result{ExitCode: 1, Error: err}
}

// Launched reports whether the generator process was started.
func (r *Result) Launched() bool {
	var launchErr *LaunchError
	return !errors.As(r.Error, &launchErr)
}

// Success reports whether the generator ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
