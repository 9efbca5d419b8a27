// SPDX-License-Identifier: MPL-2.0

package project

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/PhilLello/doxyreport/internal/cueutil"

	"github.com/pelletier/go-toml/v2"
)

const (
	// CUEDescriptorName is the CUE descriptor file name.
	CUEDescriptorName = "doxyreport.cue"
	// TOMLDescriptorName is the TOML descriptor file name.
	TOMLDescriptorName = "doxyreport.toml"

	// DefaultSourceDir is the source directory used when none is declared.
	DefaultSourceDir = "src"
	// DefaultBuildDir is the build directory used when none is declared.
	DefaultBuildDir = "target"
	// defaultOutputSubdir is joined to the build directory for the report output.
	defaultOutputSubdir = "site"
)

//go:embed project_schema.cue
var projectSchema []byte

var (
	// ErrAmbiguousDescriptor is returned when a directory has both descriptor formats.
	ErrAmbiguousDescriptor = errors.New("both doxyreport.cue and doxyreport.toml present")
	// ErrNotDirectory is returned when a project or module path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

type (
	// Project is the resolved host project model. Paths are absolute.
	Project struct {
		// Name is the project name; the directory name when not declared.
		Name string
		// Version is the project version, possibly empty.
		Version string
		// BaseDir is the project root.
		BaseDir string
		// SourceDir is the fallback INPUT when no input folders are declared.
		SourceDir string
		// BuildDir holds the generated Doxyfile under doxygen/.
		BuildDir string
		// OutputDir is the report output directory; doxygen writes to OutputDir/doxygen.
		OutputDir string
		// Inputs are input folders relative to a base directory.
		Inputs []string
		// Options are Doxyfile option overrides, never overwritten by defaults.
		Options map[string]string
		// Modules are the absolute directories of child modules.
		Modules []string
		// DescriptorPath is the descriptor file read, or "" when none existed.
		DescriptorPath string
	}

	// descriptor is the on-disk shape shared by the CUE and TOML formats.
	descriptor struct {
		Name      string            `json:"name,omitempty" toml:"name"`
		Version   string            `json:"version,omitempty" toml:"version"`
		SourceDir string            `json:"source_dir,omitempty" toml:"source_dir"`
		BuildDir  string            `json:"build_dir,omitempty" toml:"build_dir"`
		OutputDir string            `json:"output_dir,omitempty" toml:"output_dir"`
		Inputs    []string          `json:"inputs,omitempty" toml:"inputs"`
		Options   map[string]string `json:"options,omitempty" toml:"options"`
		Modules   []string          `json:"modules,omitempty" toml:"modules"`
	}
)

// Load reads the project rooted at dir. A directory without a descriptor is a
// valid project using default layout and its directory name.
func Load(dir string) (*Project, error) {
	p, _, err := load(dir, nil)
	return p, err
}

// LoadReactor returns the project at dir followed by all of its modules,
// depth-first in declaration order. A directory is visited at most once, so
// duplicate and cyclic module references are skipped.
//
// A module without its own descriptor inherits the parent's layout, inputs,
// options and version.
func LoadReactor(dir string) ([]*Project, error) {
	var (
		reactor []*Project
		visited = make(map[string]bool)
	)

	var walk func(dir string, parent *descriptor) error
	walk = func(dir string, parent *descriptor) error {
		p, desc, err := load(dir, parent)
		if err != nil {
			return err
		}
		if visited[p.BaseDir] {
			slog.Warn("skipping module already in reactor", "dir", p.BaseDir)
			return nil
		}
		visited[p.BaseDir] = true
		reactor = append(reactor, p)

		for _, module := range p.Modules {
			if err := walk(module, desc); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(dir, nil); err != nil {
		return nil, err
	}
	return reactor, nil
}

func load(dir string, parent *descriptor) (*Project, *descriptor, error) {
	baseDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve project directory %s: %w", dir, err)
	}

	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s: %w", baseDir, ErrNotDirectory)
	}

	desc, path, err := readDescriptor(baseDir)
	if err != nil {
		return nil, nil, err
	}
	if desc == nil {
		desc = inherit(parent)
	}

	return resolve(baseDir, path, desc), desc, nil
}

// inherit copies the parent's settings for a module without a descriptor.
// Name and modules are never inherited.
func inherit(parent *descriptor) *descriptor {
	if parent == nil {
		return &descriptor{}
	}
	return &descriptor{
		Version:   parent.Version,
		SourceDir: parent.SourceDir,
		BuildDir:  parent.BuildDir,
		OutputDir: parent.OutputDir,
		Inputs:    slices.Clone(parent.Inputs),
		Options:   maps.Clone(parent.Options),
	}
}

func resolve(baseDir, descriptorPath string, d *descriptor) *Project {
	name := d.Name
	if name == "" {
		name = filepath.Base(baseDir)
	}

	sourceDir := orDefault(d.SourceDir, DefaultSourceDir)
	buildDir := orDefault(d.BuildDir, DefaultBuildDir)
	outputDir := orDefault(d.OutputDir, filepath.Join(buildDir, defaultOutputSubdir))

	modules := make([]string, 0, len(d.Modules))
	for _, m := range d.Modules {
		modules = append(modules, absUnder(baseDir, m))
	}

	options := maps.Clone(d.Options)
	if options == nil {
		options = map[string]string{}
	}

	return &Project{
		Name:           name,
		Version:        d.Version,
		BaseDir:        baseDir,
		SourceDir:      absUnder(baseDir, sourceDir),
		BuildDir:       absUnder(baseDir, buildDir),
		OutputDir:      absUnder(baseDir, outputDir),
		Inputs:         slices.Clone(d.Inputs),
		Options:        options,
		Modules:        modules,
		DescriptorPath: descriptorPath,
	}
}

func readDescriptor(baseDir string) (*descriptor, string, error) {
	cuePath := filepath.Join(baseDir, CUEDescriptorName)
	tomlPath := filepath.Join(baseDir, TOMLDescriptorName)

	cueData, cueErr := os.ReadFile(cuePath)
	tomlData, tomlErr := os.ReadFile(tomlPath)

	switch {
	case cueErr == nil && tomlErr == nil:
		return nil, "", fmt.Errorf("%s: %w", baseDir, ErrAmbiguousDescriptor)
	case cueErr == nil:
		d, err := parseCUE(cueData, cuePath)
		return d, cuePath, err
	case tomlErr == nil:
		d, err := parseTOML(tomlData, tomlPath)
		return d, tomlPath, err
	}

	for _, err := range []error{cueErr, tomlErr} {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("read project descriptor: %w", err)
		}
	}
	return nil, "", nil
}

func parseCUE(data []byte, path string) (*descriptor, error) {
	result, err := cueutil.ParseAndDecode[descriptor](projectSchema, data, "#Project", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func parseTOML(data []byte, path string) (*descriptor, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	var d descriptor
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &d, nil
}

func absUnder(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
