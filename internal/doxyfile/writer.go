// SPDX-License-Identifier: MPL-2.0

package doxyfile

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// WorkDir is the build subdirectory holding the Doxyfile.
	WorkDir = "doxygen"
	// FileName is the generated configuration file name.
	FileName = "Doxyfile"
)

// ErrWriteDoxyfile is the sentinel error wrapped by WriteError.
var ErrWriteDoxyfile = errors.New("write Doxyfile")

// WriteError reports a failure to create or write the Doxyfile.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write Doxyfile %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *WriteError) Unwrap() []error { return []error{ErrWriteDoxyfile, e.Err} }

// Path returns the Doxyfile location for a build directory.
func Path(buildDir string) string {
	return filepath.Join(buildDir, WorkDir, FileName)
}

// Render serializes opts as KEY=VALUE lines in sorted key order.
func Render(opts Options) []byte {
	var size int
	for k, v := range opts {
		size += len(k) + len(v) + 2
	}

	buf := make([]byte, 0, size)
	for _, k := range opts.Keys() {
		buf = append(buf, k...)
		buf = append(buf, '=')
		buf = append(buf, opts[k]...)
		buf = append(buf, '\n')
	}
	return buf
}

// Write creates path's parent directories and writes opts to path,
// truncating any existing file. Failures are returned as *WriteError.
func Write(fs afero.Fs, path string, opts Options) (err error) {
	if mkErr := fs.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
		return &WriteError{Path: path, Err: mkErr}
	}

	f, openErr := fs.Create(path)
	if openErr != nil {
		return &WriteError{Path: path, Err: openErr}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &WriteError{Path: path, Err: closeErr}
		}
	}()

	w := bufio.NewWriter(f)
	if _, wErr := w.Write(Render(opts)); wErr != nil {
		return &WriteError{Path: path, Err: wErr}
	}
	if fErr := w.Flush(); fErr != nil {
		return &WriteError{Path: path, Err: fErr}
	}
	return nil
}
