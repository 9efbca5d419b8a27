// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"time"

	"github.com/PhilLello/doxyreport/internal/logging"
)

// Supervisor runs the generator against a Doxyfile and forwards its output.
type Supervisor struct {
	// Command is the generator argv prefix; the absolute Doxyfile path is appended.
	Command []string
	// Env is the generator environment. Nil inherits the current process environment.
	Env []string
	// Dir is the working directory. Empty inherits the current one.
	Dir string
	// Timeout kills the generator after this long. Zero disables it.
	Timeout time.Duration
	// DrainTimeout bounds the forwarder join after the process exits.
	// Zero waits for end-of-stream indefinitely.
	DrainTimeout time.Duration
	// Sink receives stdout lines at info level and stderr lines at error level.
	Sink logging.Sink
}

// Run launches the generator with doxyfile as its last argument and blocks
// until the process has exited and both forwarders have been joined.
//
// Launch failures are reported in Result.Error rather than as a panic or a
// separate return, so the caller decides whether they are fatal.
func (s *Supervisor) Run(ctx context.Context, doxyfile string) *Result {
	sink := s.Sink
	if sink == nil {
		sink = logging.Discard()
	}

	if len(s.Command) == 0 {
		return newErrorResult(&LaunchError{Err: ErrEmptyCommand})
	}

	absDoxyfile, err := filepath.Abs(doxyfile)
	if err != nil {
		return newErrorResult(&LaunchError{Command: s.Command, Err: err})
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	args := append(slices.Clone(s.Command[1:]), absDoxyfile)
	argv := append([]string{s.Command[0]}, args...)

	outR, outW, err := os.Pipe()
	if err != nil {
		return newErrorResult(&LaunchError{Command: argv, Err: fmt.Errorf("create stdout pipe: %w", err)})
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		closeAll(outR, outW)
		return newErrorResult(&LaunchError{Command: argv, Err: fmt.Errorf("create stderr pipe: %w", err)})
	}

	cmd := exec.CommandContext(ctx, s.Command[0], args...)
	cmd.Stdout = outW
	cmd.Stderr = errW
	cmd.Env = s.Env
	cmd.Dir = s.Dir

	sink.Debug("launching generator", "argv", argv)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		closeAll(outR, outW, errR, errW)
		return newErrorResult(&LaunchError{Command: argv, Err: err})
	}

	// The child holds its own copies; ours must go so EOF arrives when it exits.
	closeAll(outW, errW)

	stdout := startForwarder("stdout", outR, sink.Info, sink.Error)
	stderr := startForwarder("stderr", errR, sink.Error, sink.Error)

	waitErr := cmd.Wait()

	var deadline time.Time
	if s.DrainTimeout > 0 {
		deadline = time.Now().Add(s.DrainTimeout)
	}
	outRes, outTimedOut := stdout.stop(deadline)
	errRes, errTimedOut := stderr.stop(deadline)

	result := exitResult(ctx, waitErr)
	result.StdoutLines = outRes.lines
	result.StderrLines = errRes.lines
	for _, e := range []error{outRes.err, errRes.err} {
		if e != nil {
			result.StreamErrors = append(result.StreamErrors, e)
		}
	}
	result.DrainTimedOut = outTimedOut || errTimedOut
	result.Duration = time.Since(start)

	if result.DrainTimedOut {
		sink.Warn("generator output still open after exit, stopped forwarding",
			"drain_timeout", s.DrainTimeout)
	}
	sink.Debug("generator finished",
		"exit_code", result.ExitCode,
		"stdout_lines", result.StdoutLines,
		"stderr_lines", result.StderrLines,
		"duration", result.Duration)

	return result
}

// exitResult maps the error from cmd.Wait to a Result.
func exitResult(ctx context.Context, waitErr error) *Result {
	if waitErr == nil {
		return &Result{}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return newErrorResult(fmt.Errorf("%w: %w", ErrInterrupted, ctxErr))
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code := ExitCode(exitErr.ExitCode())
		if !code.Exited() {
			return newErrorResult(fmt.Errorf("%w: %w", ErrInterrupted, waitErr))
		}
		return &Result{ExitCode: code}
	}

	return newErrorResult(waitErr)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
