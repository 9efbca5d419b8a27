// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PhilLello/doxyreport/internal/config"
	"github.com/PhilLello/doxyreport/internal/doxyfile"
	"github.com/PhilLello/doxyreport/internal/logging"
	"github.com/PhilLello/doxyreport/internal/project"
	"github.com/PhilLello/doxyreport/internal/watch"
)

// runWatch generates once, then regenerates on every change under the
// reactor base directories until ctx is cancelled.
func runWatch(ctx context.Context, app *App, cfg *config.Config, sink logging.Sink, reactor []*project.Project, generate func(context.Context) error) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	var roots []string
	for _, p := range reactor {
		roots = append(roots, p.BaseDir)
	}
	exclude := watchExcludes(reactor, wd)

	w, err := watch.New(watch.Config{
		Roots:    roots,
		Ignore:   cfg.Watch.Ignore,
		Exclude:  exclude,
		Debounce: cfg.Watch.Debounce,
		Sink:     sink,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stdout, "%s %d change(s), regenerating\n", KeyStyle.Render("→"), len(changed))
			return generate(ctx)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if err := generate(ctx); err != nil {
		fmt.Fprintf(app.stderr, "%s initial run failed: %v\n", WarningStyle.Render("!"), err)
	}
	fmt.Fprintf(app.stdout, "%s watching %d project(s) for changes (Ctrl+C to stop)\n", KeyStyle.Render("→"), len(roots))

	return w.Run(ctx)
}

// watchExcludes lists the directories the generator writes to: each
// project's build and output directories, plus an OUTPUT_DIRECTORY override
// resolved against workDir.
func watchExcludes(reactor []*project.Project, workDir string) []string {
	var exclude []string
	for _, p := range reactor {
		exclude = append(exclude, p.BuildDir, p.OutputDir)
		if v, ok := p.Options[doxyfile.KeyOutputDirectory]; ok {
			if dir, err := doxyfile.AbsPath(v, workDir); err == nil {
				exclude = append(exclude, dir)
			}
		}
	}
	return exclude
}
