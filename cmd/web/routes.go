package main

import (
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dkylabs.com/web/internal/handlers"
	mw "dkylabs.com/web/internal/middleware"
	"dkylabs.com/web/internal/nav"
)

// page is a fixed route rendered from a single template.
type page struct {
	route    string
	template string
	titleKey string
	descKey  string
	fill     func(a *app, d *handlers.PageData)
}

var pages = []page{
	{route: "/", template: "home", titleKey: "home.title", descKey: "home.description", fill: (*app).fillHome},
	{route: "/servicios", template: "servicios", titleKey: "services.title", descKey: "services.description", fill: (*app).fillServices},
	{route: "/sobre-nosotros", template: "sobre-nosotros", titleKey: "about.title", descKey: "about.description", fill: (*app).fillAbout},
	{route: "/sobre-mi", template: "sobre-mi", titleKey: "me.title", descKey: "me.description"},
	{route: "/contacto", template: "contacto", titleKey: "contact.title", descKey: "contact.description"},
	{route: "/gestion-de-datos", template: "gestion-de-datos", titleKey: "practice.title", descKey: "practice.description", fill: (*app).fillPractice},
}

// legalPages are markdown documents of kind legal served at /<slug>.
var legalPages = []string{"terminos", "privacidad"}

// routes lists every page of the site for every locale, in a stable order.
func (a *app) routes() []string {
	var out []string
	for _, lang := range a.site.I18n.Locales {
		prefix := a.site.LocalePrefix(lang)
		for _, p := range pages {
			out = append(out, nav.Localize(prefix, p.route))
		}
		for _, slug := range legalPages {
			out = append(out, nav.Localize(prefix, "/"+slug))
		}
		for _, id := range a.guide.DocIDs() {
			out = append(out, nav.DocHref(prefix, id))
		}
	}
	return out
}

// linkTargets are the routes plus paths that answer without being pages.
func (a *app) linkTargets() []string {
	out := a.routes()
	for _, lang := range a.site.I18n.Locales {
		out = append(out, nav.Localize(a.site.LocalePrefix(lang), "/docs"))
	}
	return out
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that overwrites it.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(mw.VaryLocale)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	a.mountStatic(r, "assets")
	a.mountStatic(r, "img")
	if fav := strings.TrimPrefix(a.site.Favicon, "/"); fav != "" {
		r.Handle("/favicon.ico", mw.File(a.assets, fav))
	}

	for _, lang := range a.site.I18n.Locales {
		prefix := a.site.LocalePrefix(lang)
		r.Group(func(r chi.Router) {
			r.Use(mw.Locale(lang))
			for _, p := range pages {
				r.Get(nav.Localize(prefix, p.route), a.handlePage(p))
			}
			for _, slug := range legalPages {
				r.Get(nav.Localize(prefix, "/"+slug), a.handleLegal(slug))
			}
			r.Get(nav.Localize(prefix, "/docs"), a.handleDocsIndex)
			r.Get(nav.Localize(prefix, "/docs/*"), a.handleDoc)
		})
	}
	r.NotFound(a.handleNotFound)
	return r
}

// mountStatic serves the dir subtree of the public files at /dir/.
func (a *app) mountStatic(r chi.Router, dir string) {
	sub, err := fs.Sub(a.assets, dir)
	if err != nil {
		a.logger.Warn("static directory unavailable", zap.String("dir", dir), zap.Error(err))
		return
	}
	r.Handle("/"+dir+"/*", http.StripPrefix("/"+dir, mw.AssetsWithCache(sub, a.opts.Dev)))
}
