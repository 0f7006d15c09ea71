package main

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"dkylabs.com/web/content"
	"dkylabs.com/web/internal/cms"
	"dkylabs.com/web/internal/config"
	"dkylabs.com/web/internal/handlers"
	"dkylabs.com/web/internal/i18n"
	"dkylabs.com/web/internal/nav"
	"dkylabs.com/web/internal/site"
	"dkylabs.com/web/locales"
	"dkylabs.com/web/public"
	"dkylabs.com/web/templates"
)

const devCacheTTL = 2 * time.Second

// app holds everything a request needs. It is immutable after newApp except
// for the caches owned by cms and the renderer.
type app struct {
	opts      *config.Options
	logger    *zap.Logger
	site      site.Config
	guide     site.Sidebar
	bundle    *i18n.Bundle
	cms       *cms.Client
	views     *renderer
	assets    fs.FS
	analytics handlers.Analytics
	now       func() time.Time
}

func newApp(opts *config.Options, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := site.Load(opts.SiteConfig)
	if err != nil {
		return nil, err
	}
	if opts.PublicURL != "" {
		cfg.URL = opts.PublicURL
	}
	guide, err := site.Guide()
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.Load(locales.FS, ".", cfg.I18n.DefaultLocale, cfg.I18n.Locales)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	views, err := newRenderer(sourceFS(templates.FS, opts.TemplatesDir), templateFuncs(bundle), opts.Dev)
	if err != nil {
		return nil, err
	}

	client := cms.NewClient(opts.CMSURL, sourceFS(content.FS, opts.ContentDir))
	client.SetLogger(logger.Named("cms"))
	client.SetFallbackLang(cfg.I18n.DefaultLocale)
	if opts.Dev {
		// the watcher only sees local files; remote documents expire quickly instead
		client.SetCacheDuration(devCacheTTL)
	}
	client.SetDocRoute(func(lang, id string) string {
		return nav.DocHref(cfg.LocalePrefix(lang), id)
	})

	return &app{
		opts:      opts,
		logger:    logger,
		site:      cfg,
		guide:     guide,
		bundle:    bundle,
		cms:       client,
		views:     views,
		assets:    sourceFS(public.FS, opts.PublicDir),
		analytics: handlers.LoadAnalyticsFromEnv(),
		now:       time.Now,
	}, nil
}

// sourceFS prefers dir on disk over the embedded copy when dir is set.
func sourceFS(embedded fs.FS, dir string) fs.FS {
	if dir == "" {
		return embedded
	}
	return os.DirFS(dir)
}

// defaultLang is the locale served without a path prefix.
func (a *app) defaultLang() string {
	return a.site.I18n.DefaultLocale
}
