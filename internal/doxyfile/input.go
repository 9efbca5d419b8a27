// SPDX-License-Identifier: MPL-2.0

package doxyfile

import (
	"os"
	"strings"

	"github.com/PhilLello/doxyreport/internal/platform"
)

// ContinuationMarker ends every INPUT entry except the last.
const ContinuationMarker = " \\\n"

type (
	// Root is one project contributing to INPUT.
	Root struct {
		// BaseDir is the project base directory, with or without a trailing separator.
		BaseDir string
		// SourceDir is the project's source directory, used when no folders are declared.
		SourceDir string
	}

	// InputResolver derives the INPUT option value.
	//
	// In single mode Roots holds exactly the current project. In aggregate mode
	// it holds every reactor project, the aggregator included.
	InputResolver struct {
		// Folders are input folders relative to each root's base directory.
		Folders []string
		// Roots are the projects whose sources feed the generator.
		Roots []Root
		// Aggregate selects aggregate-mode fallback behavior.
		Aggregate bool
		// EmptyPlaceholders makes aggregate mode without folders emit one ""
		// entry per root instead of each root's source directory.
		EmptyPlaceholders bool
	}
)

// Resolve returns the INPUT value: one quoted path per line joined with
// ContinuationMarker, or a single quoted source directory in single mode
// without folders.
func (r InputResolver) Resolve() string {
	if len(r.Folders) == 0 && !r.Aggregate {
		if len(r.Roots) == 0 {
			return Quote("")
		}
		return Quote(r.Roots[0].SourceDir)
	}

	var sb strings.Builder
	for _, root := range r.Roots {
		if len(r.Folders) == 0 {
			entry := root.SourceDir
			if r.EmptyPlaceholders {
				entry = ""
			}
			sb.WriteString(Quote(entry))
			sb.WriteString(ContinuationMarker)
			continue
		}

		base := withSeparator(root.BaseDir)
		for _, folder := range r.Folders {
			sb.WriteString(Quote(base + folder))
			sb.WriteString(ContinuationMarker)
		}
	}

	return strings.TrimSuffix(sb.String(), ContinuationMarker)
}

func withSeparator(dir string) string {
	if platform.HasTrailingSeparator(dir) {
		return dir
	}
	return dir + string(os.PathSeparator)
}
