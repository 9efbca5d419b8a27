// SPDX-License-Identifier: MPL-2.0

// Package doxyfile builds and writes the Doxyfile consumed by doxygen.
//
// Resolution is pure: Resolve takes the host-supplied option overrides and
// returns a new Options map with PROJECT_NAME, PROJECT_VERSION,
// OUTPUT_DIRECTORY and INPUT filled in where absent. Write serializes the
// result as KEY=VALUE lines.
package doxyfile
