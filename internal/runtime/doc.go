// SPDX-License-Identifier: MPL-2.0

// Package runtime launches the documentation generator and supervises it.
//
// A Supervisor starts the generator with its stdout and stderr attached to
// os.Pipe write ends, and runs one forwarder goroutine per read end. Each
// forwarder delivers lines to the logging sink in stream order: stdout at
// info level, stderr at error level. The caller blocks on process exit; only
// then are the forwarders stopped, which lets each drain to end-of-stream
// and joins it over its completion channel. A read end is closed only after
// its forwarder has returned.
package runtime
