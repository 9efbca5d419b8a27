// SPDX-License-Identifier: MPL-2.0

// Package aggregate merges the generated output trees of reactor siblings
// into the aggregating project's output directory.
package aggregate
