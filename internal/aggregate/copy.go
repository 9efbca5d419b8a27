// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// CopyTree recursively copies src into dst, creating directories as needed.
// Existing files in dst are overwritten; files only in dst are kept.
// It returns the number of regular files copied.
func CopyTree(fs afero.Fs, src, dst string) (int, error) {
	info, err := fs.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s: not a directory", src)
	}

	copied := 0
	err = afero.Walk(fs, src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			return fs.MkdirAll(target, dirMode(info.Mode()))
		case info.Mode().IsRegular():
			if err := copyFile(fs, path, target, info.Mode().Perm()); err != nil {
				return err
			}
			copied++
			return nil
		default:
			// Symlinks and special files are not part of a doxygen tree.
			return nil
		}
	})
	return copied, err
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) (err error) {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

func dirMode(m os.FileMode) os.FileMode {
	if perm := m.Perm(); perm != 0 {
		return perm | 0o700
	}
	return 0o755
}
