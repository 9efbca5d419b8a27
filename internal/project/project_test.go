// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PhilLello/doxyreport/internal/testutil"
)

func TestLoad_NoDescriptorUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "widget")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.Name != "widget" {
		t.Errorf("Name = %q, want widget", p.Name)
	}
	if p.DescriptorPath != "" {
		t.Errorf("DescriptorPath = %q, want empty", p.DescriptorPath)
	}
	if p.SourceDir != filepath.Join(dir, "src") {
		t.Errorf("SourceDir = %q", p.SourceDir)
	}
	if p.BuildDir != filepath.Join(dir, "target") {
		t.Errorf("BuildDir = %q", p.BuildDir)
	}
	if p.OutputDir != filepath.Join(dir, "target", "site") {
		t.Errorf("OutputDir = %q", p.OutputDir)
	}
	if p.Options == nil || len(p.Options) != 0 {
		t.Errorf("Options = %v, want empty non-nil map", p.Options)
	}
}

func TestLoad_CUEDescriptor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, CUEDescriptorName), `
name:       "core"
version:    "1.4.0"
source_dir: "lib"
build_dir:  "out"
inputs: ["include", "lib"]
options: {
	GENERATE_LATEX: "NO"
	PROJECT_NAME:   "\"Core Library\""
}
`)

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.Name != "core" || p.Version != "1.4.0" {
		t.Errorf("Name/Version = %q/%q", p.Name, p.Version)
	}
	if p.SourceDir != filepath.Join(dir, "lib") {
		t.Errorf("SourceDir = %q", p.SourceDir)
	}
	if p.OutputDir != filepath.Join(dir, "out", "site") {
		t.Errorf("OutputDir = %q, want default under build_dir", p.OutputDir)
	}
	if strings.Join(p.Inputs, ",") != "include,lib" {
		t.Errorf("Inputs = %v", p.Inputs)
	}
	if p.Options["GENERATE_LATEX"] != "NO" || p.Options["PROJECT_NAME"] != `"Core Library"` {
		t.Errorf("Options = %v", p.Options)
	}
	if p.DescriptorPath != filepath.Join(dir, CUEDescriptorName) {
		t.Errorf("DescriptorPath = %q", p.DescriptorPath)
	}
}

func TestLoad_TOMLDescriptor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, TOMLDescriptorName), `
name = "core"
version = "2.0"
output_dir = "/var/reports/core"
inputs = ["api"]

[options]
EXTRACT_ALL = "YES"
`)

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "core" || p.Version != "2.0" {
		t.Errorf("Name/Version = %q/%q", p.Name, p.Version)
	}
	if p.OutputDir != filepath.Clean("/var/reports/core") {
		t.Errorf("OutputDir = %q, absolute paths should be kept", p.OutputDir)
	}
	if p.Options["EXTRACT_ALL"] != "YES" {
		t.Errorf("Options = %v", p.Options)
	}
}

func TestLoad_DescriptorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "unknown CUE field",
			files:   map[string]string{CUEDescriptorName: `colour: "blue"`},
			wantErr: "colour",
		},
		{
			name:    "lowercase option key",
			files:   map[string]string{CUEDescriptorName: `options: {generate_latex: "NO"}`},
			wantErr: "generate_latex",
		},
		{
			name:    "unknown TOML field",
			files:   map[string]string{TOMLDescriptorName: `colour = "blue"`},
			wantErr: TOMLDescriptorName,
		},
		{
			name:    "TOML syntax error",
			files:   map[string]string{TOMLDescriptorName: `name = `},
			wantErr: TOMLDescriptorName,
		},
		{
			name: "both formats",
			files: map[string]string{
				CUEDescriptorName:  `name: "a"`,
				TOMLDescriptorName: `name = "a"`,
			},
			wantErr: "both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, content := range tt.files {
				testutil.WriteFile(t, filepath.Join(dir, name), content)
			}

			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_NotDirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	testutil.WriteFile(t, file, "")

	if _, err := Load(file); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadReactor(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, CUEDescriptorName), `
name:    "parent"
version: "3.1"
inputs: ["include"]
options: {EXTRACT_ALL: "YES"}
modules: ["lib/a", "lib/b", "lib/a"]
`)
	// lib/a declares its own nested module and a cycle back to the root.
	testutil.WriteFile(t, filepath.Join(root, "lib", "a", TOMLDescriptorName), `
name = "alpha"
modules = ["nested", "../.."]
`)
	if err := os.MkdirAll(filepath.Join(root, "lib", "a", "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	// lib/b has no descriptor and inherits from the root.
	if err := os.MkdirAll(filepath.Join(root, "lib", "b"), 0o755); err != nil {
		t.Fatal(err)
	}

	reactor, err := LoadReactor(root)
	if err != nil {
		t.Fatalf("LoadReactor: %v", err)
	}

	names := make([]string, 0, len(reactor))
	for _, p := range reactor {
		names = append(names, p.Name)
	}
	if got, want := strings.Join(names, ","), "parent,alpha,nested,b"; got != want {
		t.Fatalf("reactor order = %s, want %s", got, want)
	}

	b := reactor[3]
	if b.Version != "3.1" {
		t.Errorf("inherited Version = %q, want 3.1", b.Version)
	}
	if len(b.Inputs) != 1 || b.Inputs[0] != "include" {
		t.Errorf("inherited Inputs = %v", b.Inputs)
	}
	if b.Options["EXTRACT_ALL"] != "YES" {
		t.Errorf("inherited Options = %v", b.Options)
	}
	if b.BaseDir != filepath.Join(root, "lib", "b") {
		t.Errorf("BaseDir = %q", b.BaseDir)
	}
	if len(b.Modules) != 0 {
		t.Errorf("modules must not be inherited, got %v", b.Modules)
	}

	alpha := reactor[1]
	if alpha.Version != "" {
		t.Errorf("module with its own descriptor should not inherit, Version = %q", alpha.Version)
	}

	// Inherited maps are copies.
	b.Options["EXTRACT_ALL"] = "NO"
	if reactor[0].Options["EXTRACT_ALL"] != "YES" {
		t.Error("mutating a module's options must not affect the parent")
	}
}

func TestLoadReactor_MissingModule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, CUEDescriptorName), `modules: ["gone"]`)

	if _, err := LoadReactor(root); err == nil {
		t.Fatal("expected error for missing module directory")
	}
}
