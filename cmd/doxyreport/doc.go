// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the doxyreport CLI.
//
// The command tree is built on cobra and executed through fang. Handlers
// receive an App and never call os.Exit; non-zero exits travel back as
// *ExitError.
package cmd
