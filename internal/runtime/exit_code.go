// SPDX-License-Identifier: MPL-2.0

package runtime

import "strconv"

// ExitCode is a generator exit status. The zero value means success.
type ExitCode int

// Exited reports whether c is a normal exit status (0-255). os/exec reports
// -1 for a process terminated by a signal.
func (c ExitCode) Exited() bool { return c >= 0 && c <= 255 }

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
