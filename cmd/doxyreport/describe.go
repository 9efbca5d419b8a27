// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/PhilLello/doxyreport/internal/i18n"
	"github.com/PhilLello/doxyreport/internal/report"

	"github.com/spf13/cobra"
)

func newDescribeCommand(app *App, root *rootFlagValues) *cobra.Command {
	var (
		locale        string
		aggregateMode bool
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the report name, description and entry point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if locale == "" {
				cfg, err := loadConfig(cmd.Context(), app, root)
				if err != nil {
					return err
				}
				locale = cfg.Locale
			}
			if _, err := i18n.Lookup(locale); err != nil {
				return err
			}

			d := report.NewDescriptor(aggregateMode)
			rows := [][2]string{
				{"name", d.Name(locale)},
				{"description", d.Description(locale)},
				{"output", d.OutputName()},
				{"external", fmt.Sprint(d.IsExternalReport())},
				{"aggregate", fmt.Sprint(d.IsAggregate())},
			}
			for _, row := range rows {
				fmt.Fprintf(app.stdout, "%s %s\n", KeyStyle.Render(row[0]+":"), row[1])
			}
			return nil
		},
	}

	var tags []string
	for _, t := range i18n.Supported() {
		tags = append(tags, t.String())
	}
	cmd.Flags().StringVar(&locale, "locale", "", "report locale ("+strings.Join(tags, ", ")+"; default from config)")
	cmd.Flags().BoolVar(&aggregateMode, "aggregate", false, "describe the aggregate report")
	return cmd
}
