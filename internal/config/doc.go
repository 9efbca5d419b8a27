// SPDX-License-Identifier: MPL-2.0

// Package config handles doxyreport configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/doxyreport/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/doxyreport/config.cue on macOS and
// %APPDATA%\doxyreport\config.cue on Windows), falling back to ./config.cue. Every key
// can be overridden through a DOXYREPORT_ environment variable, e.g.
// DOXYREPORT_GENERATOR_COMMAND or DOXYREPORT_LOG_LEVEL.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they
// reach Viper, so type errors are reported with the offending path.
package config
