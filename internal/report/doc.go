// SPDX-License-Identifier: MPL-2.0

// Package report orchestrates a doxygen report run.
//
// A Driver executes a fixed pipeline for one Request: resolve Doxyfile
// options, write the Doxyfile, run the generator and, for an aggregate run at
// the execution root, merge sibling output trees. Every step yields a
// StepResult. Failures are logged and the pipeline continues, unless the
// Policy marks that kind of failure fatal, in which case the remaining steps
// are skipped.
package report
