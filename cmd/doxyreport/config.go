// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/PhilLello/doxyreport/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App, root *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage doxyreport configuration",
		Long: `Manage doxyreport configuration.

Configuration is read from the first of:
  - the file given with --config
  - <config dir>/doxyreport/config.cue
    (Linux: ~/.config, macOS: ~/Library/Application Support, Windows: %APPDATA%)
  - config.cue in the project directory

Every key can be overridden with a DOXYREPORT_<SECTION>_<KEY> variable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), app, root)
			if err != nil {
				return err
			}

			path, err := config.ResolvePath(loadOptions(root))
			if err != nil {
				return err
			}
			if path == "" {
				path = SubtitleStyle.Render("(using defaults)")
			}
			fmt.Fprintf(app.stderr, "%s %s\n\n", KeyStyle.Render("Config file:"), path)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := root.configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(loadOptions(root)); err != nil {
					return err
				}
			}

			created, err := config.CreateDefaultConfig(path)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := loadOptions(root)
			resolved, err := config.ResolvePath(opts)
			if err != nil {
				return err
			}
			if resolved == "" {
				if resolved, err = config.DefaultPath(opts); err != nil {
					return err
				}
			}
			fmt.Fprintln(app.stdout, resolved)
			return nil
		},
	})

	return cfgCmd
}

func loadOptions(root *rootFlagValues) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: root.configPath, BaseDir: root.projectDir}
}
