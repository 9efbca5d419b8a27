// SPDX-License-Identifier: MPL-2.0

package doxyfile

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// KeyProjectName is the Doxyfile project name option.
	KeyProjectName = "PROJECT_NAME"
	// KeyProjectVersion is the Doxyfile project version option.
	KeyProjectVersion = "PROJECT_VERSION"
	// KeyOutputDirectory is the Doxyfile output directory option.
	KeyOutputDirectory = "OUTPUT_DIRECTORY"
	// KeyInput is the Doxyfile input paths option.
	KeyInput = "INPUT"

	// OutputSubdir is appended to the report output directory for OUTPUT_DIRECTORY.
	OutputSubdir = "doxygen"
)

type (
	// Options maps Doxyfile option names to raw values. Values are written
	// verbatim, so producers quote them where doxygen needs quoting.
	Options map[string]string

	// Defaults are the computed values injected for absent keys.
	Defaults struct {
		// Name becomes PROJECT_NAME.
		Name string
		// Version becomes PROJECT_VERSION.
		Version string
		// OutputDir is the report output directory; OUTPUT_DIRECTORY is OutputDir/doxygen.
		OutputDir string
	}
)

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Keys returns the option names in sorted order.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// Quote wraps s in double quotes without escaping.
func Quote(s string) string {
	return `"` + s + `"`
}

// Unquote strips one pair of surrounding double quotes, if present.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// AbsPath unquotes a path-valued option and makes it absolute. A relative
// value is taken against workDir, or the process working directory when
// workDir is empty, which is where the generator resolves it.
func AbsPath(value, workDir string) (string, error) {
	p := Unquote(value)
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if workDir == "" {
		return filepath.Abs(p)
	}
	return filepath.Join(workDir, p), nil
}

// FillDefaults returns a copy of opts with PROJECT_NAME, PROJECT_VERSION and
// OUTPUT_DIRECTORY set from d where absent. Present keys are never overwritten.
func FillDefaults(opts Options, d Defaults) Options {
	out := opts.Clone()
	setIfAbsent(out, KeyProjectName, Quote(d.Name))
	setIfAbsent(out, KeyProjectVersion, Quote(d.Version))
	setIfAbsent(out, KeyOutputDirectory, Quote(joinOutputDir(d.OutputDir)))
	return out
}

// Resolve fills defaults and then INPUT. opts is not modified.
func Resolve(opts Options, d Defaults, inputs InputResolver) Options {
	out := FillDefaults(opts, d)
	setIfAbsent(out, KeyInput, inputs.Resolve())
	return out
}

func setIfAbsent(o Options, key, value string) {
	if _, ok := o[key]; !ok {
		o[key] = value
	}
}

// joinOutputDir appends the doxygen subdirectory with a single separator.
func joinOutputDir(dir string) string {
	return withSeparator(dir) + OutputSubdir
}
