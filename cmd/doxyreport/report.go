// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PhilLello/doxyreport/internal/aggregate"
	"github.com/PhilLello/doxyreport/internal/config"
	"github.com/PhilLello/doxyreport/internal/doxyfile"
	"github.com/PhilLello/doxyreport/internal/issue"
	"github.com/PhilLello/doxyreport/internal/logging"
	"github.com/PhilLello/doxyreport/internal/project"
	"github.com/PhilLello/doxyreport/internal/report"
	genrt "github.com/PhilLello/doxyreport/internal/runtime"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exitInterrupted is the conventional status for a SIGINT-terminated run.
const exitInterrupted = 130

type reportFlagValues struct {
	dryRun         bool
	watch          bool
	strict         bool
	failOnExitCode bool
	modules        bool
}

func newReportCommand(app *App, root *rootFlagValues) *cobra.Command {
	flags := &reportFlagValues{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the doxygen report of a single project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), app, root, flags, false)
		},
	}
	bindReportFlags(cmd, flags)
	return cmd
}

func newAggregateCommand(app *App, root *rootFlagValues) *cobra.Command {
	flags := &reportFlagValues{}
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Generate the aggregate doxygen report of a project and its modules",
		Long: `Generate the aggregate doxygen report.

The INPUT of the Doxyfile covers every module. Once doxygen has run, the
module output directories are merged into the root output directory.

With --modules the aggregate report is first generated in every module,
then at the root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), app, root, flags, true)
		},
	}
	bindReportFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.modules, "modules", false, "generate the aggregate report in every module before the root")
	return cmd
}

func bindReportFlags(cmd *cobra.Command, flags *reportFlagValues) {
	f := cmd.Flags()
	f.BoolVar(&flags.dryRun, "dry-run", false, "write and print the Doxyfile without running doxygen")
	f.BoolVar(&flags.watch, "watch", false, "regenerate when project sources change")
	f.BoolVar(&flags.strict, "strict", false, "fail when doxygen cannot be launched")
	f.BoolVar(&flags.failOnExitCode, "fail-on-exit-code", false, "fail when doxygen exits with a non-zero status")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
}

func runReport(ctx context.Context, app *App, root *rootFlagValues, flags *reportFlagValues, aggregateMode bool) error {
	cfg, err := loadConfig(ctx, app, root)
	if err != nil {
		return err
	}
	logger, err := newLogger(app, cfg, root)
	if err != nil {
		return err
	}

	reactor, err := app.Projects.LoadReactor(root.projectDir)
	if err != nil {
		return newServiceError(err, issue.ProjectLoadFailedId, "")
	}

	driver, err := newDriver(cfg, flags, logger)
	if err != nil {
		return err
	}
	requests := buildRequests(reactor, aggregateMode, flags)

	generate := func(ctx context.Context) error {
		for _, req := range requests {
			out := driver.Run(ctx, req)
			if req.DryRun {
				fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("#"), out.DoxyfilePath)
				_, _ = app.stdout.Write(doxyfile.Render(out.Options))
			}
			if err := out.Err(); err != nil {
				return classifyOutcomeError(err)
			}
			if !req.DryRun {
				printSummary(app, req, out)
			}
		}
		return nil
	}

	if !flags.watch {
		return generate(ctx)
	}
	return runWatch(ctx, app, cfg, logger, reactor, generate)
}

// newDriver assembles the supervisor, merger and policy from configuration
// and command flags.
func newDriver(cfg *config.Config, flags *reportFlagValues, sink logging.Sink) (*report.Driver, error) {
	command, err := genrt.ParseCommand(cfg.Generator.Command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("parse generator command: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	env, err := genrt.Environ(os.Environ(), cfg.Generator.EnvFile, wd)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	return &report.Driver{
		Fs: fs,
		Runner: &genrt.Supervisor{
			Command:      command,
			Env:          env,
			Timeout:      cfg.Generator.Timeout,
			DrainTimeout: cfg.Generator.DrainTimeout,
			Sink:         sink,
		},
		Merger: &aggregate.Merger{Fs: fs, Sink: sink, WorkDir: wd},
		Sink:   sink,
		Policy: report.Policy{
			Strict:               cfg.Generator.Strict || flags.strict,
			FailOnExitCode:       cfg.Generator.FailOnExitCode || flags.failOnExitCode,
			EmptyAggregateInputs: cfg.Compat.EmptyAggregateInputs,
		},
	}, nil
}

// buildRequests returns the runs to perform in order. With --modules the
// modules come first and the root last, as a build reactor would order them.
func buildRequests(reactor []*project.Project, aggregateMode bool, flags *reportFlagValues) []report.Request {
	root := reactor[0]
	var requests []report.Request

	if aggregateMode && flags.modules {
		for _, p := range reactor[1:] {
			requests = append(requests, report.NewRequest(p, reactor, true, false))
		}
	}

	if aggregateMode {
		requests = append(requests, report.NewRequest(root, reactor, true, true))
	} else {
		requests = append(requests, report.NewRequest(root, nil, false, true))
	}

	for i := range requests {
		requests[i].DryRun = flags.dryRun
	}
	return requests
}

// classifyOutcomeError maps a fatal step error to a rendered ServiceError
// and an exit status.
func classifyOutcomeError(err error) error {
	var (
		launchErr *genrt.LaunchError
		codeErr   *report.ExitCodeError
	)

	switch {
	case errors.As(err, &launchErr) && launchErr.NotFound():
		return &ExitError{Code: 127, Err: newServiceError(err, issue.GeneratorNotFoundId, "")}
	case errors.As(err, &launchErr) && errors.Is(err, os.ErrPermission):
		return &ExitError{Code: 126, Err: newServiceError(err, issue.PermissionDeniedId, "")}
	case errors.As(err, &codeErr):
		return &ExitError{Code: int(codeErr.Code), Err: newServiceError(err, issue.GeneratorFailedId, "")}
	case errors.Is(err, genrt.ErrInterrupted):
		return &ExitError{Code: exitInterrupted, Err: err}
	case errors.Is(err, doxyfile.ErrWriteDoxyfile):
		return newServiceError(err, issue.DoxyfileWriteFailedId, "")
	case errors.Is(err, aggregate.ErrCopySibling):
		return newServiceError(err, issue.AggregationCopyFailedId, "")
	default:
		return err
	}
}

func printSummary(app *App, req report.Request, out *report.Outcome) {
	mark := SuccessStyle.Render("✓")
	if len(out.Errors()) > 0 {
		mark = WarningStyle.Render("!")
	}

	kind := "report"
	if req.Aggregate {
		kind = "aggregate report"
	}
	dest := doxyfile.Unquote(out.Options[doxyfile.KeyOutputDirectory])
	fmt.Fprintf(app.stdout, "%s %s %s: %s\n", mark, req.Project.Name, kind, KeyStyle.Render(dest))

	for _, err := range out.Errors() {
		fmt.Fprintf(app.stderr, "  %s %s\n", WarningStyle.Render("-"), err)
	}
}
