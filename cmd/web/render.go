package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dkylabs.com/web/internal/handlers"
	"dkylabs.com/web/internal/i18n"
	"dkylabs.com/web/internal/metrics"
	mw "dkylabs.com/web/internal/middleware"
	"dkylabs.com/web/internal/nav"
	"dkylabs.com/web/internal/site"
)

// renderer executes the "base" layout with a page template defining "content".
// Each page is parsed into its own clone of the layout and partials. With reload
// set, templates are reparsed on each request.
type renderer struct {
	fsys   fs.FS
	funcs  template.FuncMap
	reload bool
	pages  map[string]*template.Template
}

func newRenderer(fsys fs.FS, funcs template.FuncMap, reload bool) (*renderer, error) {
	r := &renderer{fsys: fsys, funcs: funcs, reload: reload}
	// parse eagerly even with reload so broken templates fail at startup
	pages, err := parseTemplates(fsys, funcs)
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap) (map[string]*template.Template, error) {
	base, err := template.New("_root").Funcs(funcs).ParseFS(fsys, "layouts/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	files, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no templates found under pages/")
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = clone
	}
	return pages, nil
}

func (r *renderer) execute(w io.Writer, name string, data any) error {
	pages := r.pages
	if r.reload {
		p, err := parseTemplates(r.fsys, r.funcs)
		if err != nil {
			return err
		}
		pages = p
	}
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// render buffers the page so a failing template never leaves a half-written response.
func (a *app) render(w http.ResponseWriter, r *http.Request, name string, data *handlers.PageData, status int) {
	var buf bytes.Buffer
	if err := a.views.execute(&buf, name, data); err != nil {
		metrics.IncRenderError(name)
		mw.LoggerFrom(r.Context()).Error("render page", zap.String("template", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template error")
		return
	}
	if status == http.StatusOK {
		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		metrics.IncPageView(route, data.Lang)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func templateFuncs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t": bundle.T,
		// locale files are authored with inline markup
		"thtml": func(lang, key string) template.HTML {
			return template.HTML(bundle.T(lang, key))
		},
		"label": func(lang, key, fallback string) string {
			if key == "" {
				return fallback
			}
			if v := bundle.T(lang, key); v != key || fallback == "" {
				return v
			}
			return fallback
		},
		"link":     nav.Localize,
		"dict":     dict,
		"join":     strings.Join,
		"themeCSS": themeCSS,
		"now":      time.Now,
	}
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

var (
	cssVarName  = regexp.MustCompile(`^--[a-z0-9-]+$`)
	cssVarValue = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)
)

// themeCSS renders palette custom properties. Entries that are not a plain
// color are dropped.
func themeCSS(vars []site.CSSVar) template.CSS {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		value := strings.TrimSpace(v.Value)
		if !cssVarName.MatchString(v.Name) || !cssVarValue.MatchString(value) {
			continue
		}
		parts = append(parts, v.Name+": "+value+";")
	}
	return template.CSS(strings.Join(parts, " "))
}
