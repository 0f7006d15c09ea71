package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dkylabs.com/web/internal/config"
	"dkylabs.com/web/internal/export"
)

// notFoundRoute is requested during the export to produce 404.html.
const notFoundRoute = "/404"

func newBuildCommand(opts *config.Options) *cobra.Command {
	var skipCheck bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		Long:  "build renders every page for every locale into --out, writes 404.html and copies the static assets. Broken links fail the build unless --skip-check is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !skipCheck {
				report, err := a.check(cmd.Context())
				if err != nil {
					return err
				}
				if err := a.applyLinkPolicies(report); err != nil {
					return err
				}
			}
			res, err := export.Build(cmd.Context(), a.router(), a.routes(), export.Options{
				OutDir:   opts.Out,
				Workers:  opts.Workers,
				Assets:   a.assets,
				NotFound: notFoundRoute,
				Logger:   logger.Named("export"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages and %d assets to %s\n", len(res.Pages), res.Assets, opts.Out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Do not run the link check before writing")
	return cmd
}
