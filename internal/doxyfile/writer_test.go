// SPDX-License-Identifier: MPL-2.0

package doxyfile

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestPath(t *testing.T) {
	t.Parallel()

	if got, want := Path("/proj/target"), filepath.Join("/proj/target", "doxygen", "Doxyfile"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	opts := Options{
		KeyProjectName:   `"core"`,
		KeyInput:         `"/p/a" \` + "\n" + `"/p/b"`,
		"GENERATE_LATEX": "NO",
		"EMPTY":          "",
	}
	path := Path("/proj/target")

	if err := Write(fs, path, opts); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	// INPUT spans two physical lines, so count logical KEY=VALUE entries.
	seen := map[string]bool{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if _, known := opts[key]; known {
			seen[key] = true
		}
	}
	if len(seen) != len(opts) {
		t.Errorf("found keys %v, want all of %v", seen, opts.Keys())
	}

	want := "EMPTY=\n" +
		"GENERATE_LATEX=NO\n" +
		`INPUT="/p/a" \` + "\n" + `"/p/b"` + "\n" +
		`PROJECT_NAME="core"` + "\n"
	if string(data) != want {
		t.Errorf("file content =\n%s\nwant\n%s", data, want)
	}
}

func TestWrite_LineCountMatchesEntries(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	opts := Options{}
	for _, k := range []string{"A", "B", "C", "D", "E"} {
		opts[k] = k + "_value"
	}

	if err := Write(fs, "/out/Doxyfile", opts); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := afero.ReadFile(fs, "/out/Doxyfile")

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != len(opts) {
		t.Fatalf("got %d lines, want %d", len(lines), len(opts))
	}
	for _, line := range lines {
		k, v, ok := strings.Cut(line, "=")
		if !ok || opts[k] != v {
			t.Errorf("line %q does not match an option", line)
		}
	}
}

func TestWrite_Truncates(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/proj/target/doxygen/Doxyfile"
	if err := afero.WriteFile(fs, path, []byte(strings.Repeat("STALE=1\n", 100)), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Write(fs, path, Options{"A": "1"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := afero.ReadFile(fs, path)
	if string(data) != "A=1\n" {
		t.Errorf("file not truncated: %q", data)
	}
}

func TestWrite_ReadOnlyFs(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := Write(fs, "/proj/target/doxygen/Doxyfile", Options{"A": "1"})
	if !errors.Is(err, ErrWriteDoxyfile) {
		t.Fatalf("expected ErrWriteDoxyfile, got %v", err)
	}

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
	if writeErr.Path != "/proj/target/doxygen/Doxyfile" {
		t.Errorf("Path = %q", writeErr.Path)
	}
}

func TestWrite_ParentIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "target")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	err := Write(afero.NewOsFs(), Path(blocker), Options{"A": "1"})
	if !errors.Is(err, ErrWriteDoxyfile) {
		t.Fatalf("expected ErrWriteDoxyfile, got %v", err)
	}
}
