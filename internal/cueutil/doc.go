// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Project descriptors (doxyreport.cue) and the tool configuration file are both
// validated the same way:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed project_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[descriptor](
//	    schemaBytes,
//	    data,
//	    "#Project",
//	    cueutil.WithFilename("doxyreport.cue"),
//	)
package cueutil
