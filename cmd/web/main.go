// Command web serves the DKY Labs site, exports it as static files and checks its links.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"dkylabs.com/web/internal/config"
	"dkylabs.com/web/internal/linkcheck"
	"dkylabs.com/web/internal/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	cmd := &cobra.Command{
		Use:           "web",
		Short:         "DKY Labs website",
		Long:          "web renders the DKY Labs site: serve it over HTTP, export it as static files or check its links.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Apply(config.NewViper(), cmd.Flags()); err != nil {
				return err
			}
			opts.ApplyDevDefaults()
			return opts.Validate()
		},
	}
	opts.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newServeCommand(opts),
		newBuildCommand(opts),
		newCheckCommand(opts),
	)
	return cmd
}

// setup builds the logger and the application for a command run.
func setup(opts *config.Options) (*app, *zap.Logger, error) {
	logger, err := observability.NewLogger(opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	a, err := newApp(opts, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return a, logger, nil
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var broken *linkcheck.BrokenLinksError
	switch {
	case errors.As(err, &broken):
		message = fmt.Sprintf("%s\nHint: fix the links above or relax on_broken_links in the site config.", err)
	case errors.Is(err, context.Canceled):
		message = "interrupted"
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
