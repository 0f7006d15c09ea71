package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dkylabs.com/web/internal/cms"
	"dkylabs.com/web/internal/config"
	"dkylabs.com/web/internal/export"
	"dkylabs.com/web/internal/linkcheck"
	"dkylabs.com/web/internal/site"
)

func newCheckCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Render every page and report broken links, images and sidebar entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			report, err := a.check(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.applyLinkPolicies(report); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d pages, %d broken reference(s)\n", report.Pages, len(report.Broken))
			return nil
		},
	}
}

// check renders all routes in-process and collects every broken reference.
// Sidebar entries without their own document in the default locale are
// reported too; a translation does not count.
func (a *app) check(ctx context.Context) (linkcheck.Report, error) {
	var report linkcheck.Report
	for _, id := range a.guide.DocIDs() {
		if !a.cms.HasLocal(cms.KindDocs, id, a.defaultLang()) {
			report.Add(linkcheck.Broken{Page: a.guide.Name, Target: id, Kind: linkcheck.KindSidebar})
		}
	}

	routes := a.routes()
	rendered, err := export.Render(ctx, a.router(), routes, a.opts.Workers)
	if err != nil {
		return report, err
	}
	checker := linkcheck.New(a.linkTargets(), a.assets)
	for _, p := range rendered {
		broken, err := checker.CheckPage(p.Route, bytes.NewReader(p.Body))
		if err != nil {
			return report, err
		}
		report.Add(broken...)
	}
	report.Pages = len(rendered)
	report.Sort()
	return report, nil
}

// applyLinkPolicies logs findings under the warn policy and returns an error
// for findings under the throw policy.
func (a *app) applyLinkPolicies(report linkcheck.Report) error {
	links, markdown := a.site.OnBrokenLinks, a.site.OnBrokenMarkdownLinks
	for _, b := range report.Filter(site.PolicyWarn, links, markdown) {
		a.logger.Warn("broken reference",
			zap.String("page", b.Page),
			zap.String("target", b.Target),
			zap.String("kind", string(b.Kind)))
	}
	return report.Err(links, markdown)
}
