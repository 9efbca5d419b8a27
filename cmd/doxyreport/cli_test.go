// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/PhilLello/doxyreport/internal/doxyfile"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"doxyreport": Execute,
		"doxygen":    fakeDoxygen,
	})
}

// TestCLI runs the testscript scripts in testdata against the doxyreport
// command and a fake doxygen.
func TestCLI(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		RequireExplicitExec: true,
	})
}

// fakeDoxygen reads the Doxyfile given as last argument, echoes a line per
// stream and writes html/index.html plus html/<PROJECT_NAME>.html under
// OUTPUT_DIRECTORY. FAKE_DOXYGEN_EXIT sets its exit status.
func fakeDoxygen() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: doxygen <Doxyfile>")
		os.Exit(2)
	}

	opts, err := readDoxyfile(os.Args[len(os.Args)-1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	name := doxyfile.Unquote(opts[doxyfile.KeyProjectName])
	fmt.Printf("Generating docs for %s\n", name)
	fmt.Fprintf(os.Stderr, "warning: %s has undocumented members\n", name)

	html := filepath.Join(doxyfile.Unquote(opts[doxyfile.KeyOutputDirectory]), "html")
	if err := os.MkdirAll(html, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	for _, page := range []string{"index.html", name + ".html"} {
		if err := os.WriteFile(filepath.Join(html, page), []byte(name+"\n"), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	if code, err := strconv.Atoi(os.Getenv("FAKE_DOXYGEN_EXIT")); err == nil {
		os.Exit(code)
	}
}

func readDoxyfile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok || strings.HasPrefix(key, `"`) {
			continue
		}
		opts[key] = value
	}
	return opts, sc.Err()
}
