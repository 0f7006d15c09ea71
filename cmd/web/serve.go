package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dkylabs.com/web/internal/config"
	"dkylabs.com/web/internal/watch"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains connections.
// In dev mode a watcher drops cached documents when sources change.
func (a *app) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.opts.Addr,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	if a.opts.Dev {
		w, err := watch.New(a.logger.Named("watch"), a.opts.TemplatesDir, a.opts.ContentDir, a.opts.PublicDir)
		if err != nil {
			return err
		}
		w.OnChange(func() {
			a.cms.InvalidateCache()
			a.logger.Info("sources changed, content cache cleared")
		})
		g.Go(func() error { return w.Run(ctx) })
	}
	g.Go(func() error {
		a.logger.Info("web listening", zap.String("addr", srv.Addr), zap.Bool("dev", a.opts.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
