// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/PhilLello/doxyreport/internal/config"
	"github.com/PhilLello/doxyreport/internal/project"
)

type (
	// App wires CLI services and shared dependencies. Every cobra handler
	// receives an App and reaches configuration and projects through it.
	App struct {
		Config   ConfigProvider
		Projects ProjectLoader
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Projects ProjectLoader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ProjectLoader loads a project and its modules, root first.
	ProjectLoader interface {
		LoadReactor(dir string) ([]*project.Project, error)
	}

	projectLoaderFunc func(dir string) ([]*project.Project, error)
)

// LoadReactor calls f.
func (f projectLoaderFunc) LoadReactor(dir string) ([]*project.Project, error) { return f(dir) }

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Projects == nil {
		deps.Projects = projectLoaderFunc(project.LoadReactor)
	}

	return &App{
		Config:   deps.Config,
		Projects: deps.Projects,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}
