// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by package tests: a recording
// logging sink and filesystem fixtures that fail the test on error.
package testutil
