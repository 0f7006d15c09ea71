// Package export renders the site into a directory of static files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnexpectedStatus is returned when a route does not render with the expected status.
var ErrUnexpectedStatus = errors.New("export: unexpected status")

// Page is a rendered route.
type Page struct {
	Route  string
	Status int
	Body   []byte
}

// File returns the output path of the page relative to the output directory:
// "/" is index.html and "/a/b" is a/b/index.html.
func (p Page) File() string {
	return FileFor(p.Route)
}

// FileFor maps a route to its output file.
func FileFor(route string) string {
	clean := strings.Trim(path.Clean("/"+route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// Options configures Build.
type Options struct {
	OutDir string
	// Workers bounds concurrent renders; values below 1 mean 4.
	Workers int
	// Assets is copied verbatim into OutDir.
	Assets fs.FS
	// NotFound is requested once and written to 404.html; it must answer 404.
	NotFound string
	Logger   *zap.Logger
}

// Result summarizes a build.
type Result struct {
	Pages  []Page
	Assets int
}

// Render requests every route from h in-process. Every route must answer 200.
func Render(ctx context.Context, h http.Handler, routes []string, workers int) ([]Page, error) {
	if workers < 1 {
		workers = 4
	}
	pages := make([]Page, len(routes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, route := range routes {
		g.Go(func() error {
			p, err := renderOne(ctx, h, route, http.StatusOK)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func renderOne(ctx context.Context, h http.Handler, route string, want int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != want {
		return Page{}, fmt.Errorf("%w: %s answered %d, want %d", ErrUnexpectedStatus, route, rec.Code, want)
	}
	return Page{Route: route, Status: rec.Code, Body: bytes.Clone(rec.Body.Bytes())}, nil
}

// Build renders routes, writes them under opts.OutDir and copies the assets.
func Build(ctx context.Context, h http.Handler, routes []string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.OutDir == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	pages, err := Render(ctx, h, routes, opts.Workers)
	if err != nil {
		return Result{}, err
	}
	if opts.NotFound != "" {
		p, err := renderOne(ctx, h, opts.NotFound, http.StatusNotFound)
		if err != nil {
			return Result{}, err
		}
		if err := writeFile(filepath.Join(opts.OutDir, "404.html"), p.Body); err != nil {
			return Result{}, err
		}
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for _, p := range pages {
		g.Go(func() error {
			target := filepath.Join(opts.OutDir, filepath.FromSlash(p.File()))
			if err := writeFile(target, p.Body); err != nil {
				return err
			}
			logger.Debug("page written", zap.String("route", p.Route), zap.String("file", target))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Pages: pages}
	if opts.Assets != nil {
		n, err := copyAssets(opts.Assets, opts.OutDir)
		if err != nil {
			return Result{}, err
		}
		res.Assets = n
	}
	logger.Info("static build written",
		zap.String("out", opts.OutDir), zap.Int("pages", len(pages)), zap.Int("assets", res.Assets))
	return res, nil
}

func copyAssets(src fs.FS, outDir string) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".go") {
			return nil
		}
		in, err := src.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		target := filepath.Join(outDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			_ = out.Close()
			return err
		}
		count++
		return out.Close()
	})
	if err != nil {
		return count, fmt.Errorf("export: copy assets: %w", err)
	}
	return count, nil
}

func writeFile(target string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
