// SPDX-License-Identifier: MPL-2.0

// Package project loads the host project model that drives a report run.
//
// A project directory may carry a doxyreport.cue or a doxyreport.toml descriptor
// naming the project, its layout (source, build and report output directories),
// explicit input folders, Doxyfile option overrides and child modules. All
// returned paths are absolute. LoadReactor walks modules depth-first and returns
// the execution root first, mirroring a build reactor.
package project
