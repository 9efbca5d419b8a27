// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers.
package platform

import (
	"runtime"
	"strings"
)

const (
	// Windows is the GOOS value for Windows.
	Windows = "windows"
	// Darwin is the GOOS value for macOS.
	Darwin = "darwin"
)

// IsWindows reports whether the current platform is Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// HasTrailingSeparator reports whether path ends in a forward or backward slash.
// Both count on every platform; descriptors written on one OS are read on others.
func HasTrailingSeparator(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`)
}
