// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PhilLello/doxyreport/internal/config"
	"github.com/PhilLello/doxyreport/internal/issue"
	"github.com/PhilLello/doxyreport/internal/logging"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
	projectDir string
	logFormat  string
}

func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Generate doxygen reports for a project and its modules",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - doxygen reports for multi-module projects") + `

doxyreport writes a Doxyfile for a project, runs doxygen against it and
forwards its output to the log. In aggregate mode the inputs of every
module are combined and the module reports are merged into the root
report directory.

Projects are described by a doxyreport.cue or doxyreport.toml file.

` + SubtitleStyle.Render("Examples:") + `
  doxyreport report                 Report on the project in the current directory
  doxyreport report --dry-run       Print the Doxyfile without running doxygen
  doxyreport aggregate --modules    Report on every module, then aggregate
  doxyreport describe --locale fr   Show the localized report description`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/doxyreport/config.cue)")
	pf.StringVarP(&flags.projectDir, "project", "C", ".", "project directory")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text, json or logfmt (overrides config)")

	rootCmd.AddCommand(newReportCommand(app, flags))
	rootCmd.AddCommand(newAggregateCommand(app, flags))
	rootCmd.AddCommand(newDescribeCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting status.
// This is called by main.main().
func Execute() {
	os.Exit(run(context.Background(), NewApp(Dependencies{}), os.Args[1:]))
}

// run executes the command tree with args and returns the exit code.
func run(ctx context.Context, app *App, args []string) int {
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return 0
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(app.stderr, svcErr)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}

// loadConfig loads configuration honoring --config and the project directory.
func loadConfig(ctx context.Context, app *App, flags *rootFlagValues) (*config.Config, error) {
	cfg, err := app.Config.Load(ctx, loadOptions(flags))
	if err != nil {
		styled := WarningStyle.Render(formatErrorForDisplay(err, flags.verbose)) + "\n"
		return nil, newServiceError(err, issue.ConfigLoadFailedId, styled)
	}
	return cfg, nil
}

// newLogger builds the generator sink and installs it as the slog default.
func newLogger(app *App, cfg *config.Config, flags *rootFlagValues) (*log.Logger, error) {
	format := cfg.Log.Format
	if flags.logFormat != "" {
		format = flags.logFormat
	}

	logger, err := logging.New(logging.Options{
		Writer:  app.stderr,
		Level:   cfg.Log.Level,
		Verbose: flags.verbose,
		Format:  logging.Format(format),
		Prefix:  "doxygen",
	})
	if err != nil {
		return nil, err
	}
	logging.InstallDefault(logger)
	return logger, nil
}

// formatErrorForDisplay uses ActionableError.Format when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
