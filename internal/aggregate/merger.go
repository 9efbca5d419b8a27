// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PhilLello/doxyreport/internal/doxyfile"
	"github.com/PhilLello/doxyreport/internal/logging"

	"github.com/spf13/afero"
)

var (
	// ErrCopySibling is the sentinel error wrapped by CopyError.
	ErrCopySibling = errors.New("copy sibling output")
	// ErrOutsideBaseDir is returned when the aggregator's output directory is
	// not below its base directory, so it cannot be re-rooted under a sibling.
	ErrOutsideBaseDir = errors.New("output directory is outside the base directory")
)

type (
	// CopyError reports a failed sibling copy.
	CopyError struct {
		Sibling string
		Source  string
		Err     error
	}

	// SiblingResult is the outcome for one sibling.
	SiblingResult struct {
		// BaseDir is the sibling's base directory.
		BaseDir string
		// Source is the sibling output directory that was copied.
		Source string
		// Files is the number of files copied.
		Files int
		// Err is a *CopyError, or nil on success.
		Err error
	}

	// Merger copies sibling output trees into the aggregator's output directory.
	Merger struct {
		// Fs is the filesystem to copy on. Nil means the OS filesystem.
		Fs afero.Fs
		// Sink receives progress and per-sibling errors.
		Sink logging.Sink
		// WorkDir resolves a relative OUTPUT_DIRECTORY. Empty means the
		// process working directory, where the generator runs.
		WorkDir string
	}
)

// Error implements the error interface.
func (e *CopyError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("copy output of %s: %v", e.Sibling, e.Err)
	}
	return fmt.Sprintf("copy output of %s from %s: %v", e.Sibling, e.Source, e.Err)
}

// Unwrap returns both ErrCopySibling and the underlying cause.
func (e *CopyError) Unwrap() []error { return []error{ErrCopySibling, e.Err} }

// Merge copies each sibling's output tree into outputDir. outputDir is the
// aggregator's OUTPUT_DIRECTORY value, quoted or not; a relative value is
// resolved against WorkDir. The sibling tree is found by taking outputDir
// relative to baseDir and re-rooting it under the sibling's base directory. siblings must not include the aggregator itself;
// entries equal to baseDir are skipped.
//
// A failing sibling is logged and recorded in its SiblingResult; the
// remaining siblings are still processed.
func (m *Merger) Merge(baseDir, outputDir string, siblings []string) []SiblingResult {
	fs := m.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	sink := m.Sink
	if sink == nil {
		sink = logging.Discard()
	}

	dest, relErr := doxyfile.AbsPath(outputDir, m.WorkDir)
	var rel string
	if relErr == nil {
		rel, relErr = relativeOutput(baseDir, dest)
	}

	results := make([]SiblingResult, 0, len(siblings))
	for _, sibling := range siblings {
		if filepath.Clean(sibling) == filepath.Clean(baseDir) {
			continue
		}

		res := SiblingResult{BaseDir: sibling}
		if relErr != nil {
			res.Err = &CopyError{Sibling: sibling, Err: relErr}
			sink.Error("cannot locate sibling output", "sibling", sibling, "err", relErr)
			results = append(results, res)
			continue
		}

		res.Source = filepath.Join(sibling, rel)
		sink.Debug("merging sibling output", "from", res.Source, "to", dest)

		files, err := CopyTree(fs, res.Source, dest)
		res.Files = files
		if err != nil {
			res.Err = &CopyError{Sibling: sibling, Source: res.Source, Err: err}
			sink.Error("failed to merge sibling output", "sibling", sibling, "from", res.Source, "err", err)
		} else {
			sink.Info("merged sibling output", "sibling", filepath.Base(sibling), "files", files)
		}
		results = append(results, res)
	}
	return results
}

// Failed returns the results that carry an error.
func Failed(results []SiblingResult) []SiblingResult {
	var failed []SiblingResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

func relativeOutput(baseDir, outputDir string) (string, error) {
	rel, err := filepath.Rel(baseDir, outputDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutsideBaseDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is not below %s", ErrOutsideBaseDir, outputDir, baseDir)
	}
	return rel, nil
}
