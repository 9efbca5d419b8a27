// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog holds Markdown guidance for the failure
// classes of a report run (missing generator, unwritable Doxyfile, failed
// aggregation copy, ...) rendered with glamour by the CLI.
package issue
