package export

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func siteHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/servicios", "/en/servicios", "/docs/gestion-datos/marco-teorico":
			_, _ = w.Write([]byte("page " + r.URL.Path))
		case "/roto":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("not found"))
		}
	})
	return mux
}

func TestFileFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/":                    "index.html",
		"":                     "index.html",
		"/servicios":           "servicios/index.html",
		"/en/servicios/":       "en/servicios/index.html",
		"/docs/a/b":            "docs/a/b/index.html",
		"/../../etc/servicios": "etc/servicios/index.html",
	}
	for route, want := range cases {
		require.Equal(t, want, FileFor(route), route)
	}
}

func TestBuildWritesPagesAndAssets(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	assets := fstest.MapFS{
		"assets/css/site.css": {Data: []byte("body{}")},
		"img/logo_small.png":  {Data: []byte("png")},
		"embed.go":            {Data: []byte("package public")},
	}
	routes := []string{"/", "/servicios", "/en/servicios", "/docs/gestion-datos/marco-teorico"}
	res, err := Build(context.Background(), siteHandler(), routes, Options{
		OutDir:   out,
		Workers:  2,
		Assets:   assets,
		NotFound: "/__missing__",
	})
	require.NoError(t, err)
	require.Len(t, res.Pages, 4)
	require.Equal(t, 2, res.Assets)

	read := func(rel string) string {
		b, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		return string(b)
	}
	require.Equal(t, "page /", read("index.html"))
	require.Equal(t, "page /en/servicios", read("en/servicios/index.html"))
	require.Equal(t, "page /docs/gestion-datos/marco-teorico", read("docs/gestion-datos/marco-teorico/index.html"))
	require.Equal(t, "not found", read("404.html"))
	require.Equal(t, "body{}", read("assets/css/site.css"))
	_, err = os.Stat(filepath.Join(out, "embed.go"))
	require.True(t, os.IsNotExist(err))
}

func TestRenderFailsOnNonOK(t *testing.T) {
	t.Parallel()

	_, err := Render(context.Background(), siteHandler(), []string{"/", "/roto"}, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnexpectedStatus))
	require.Contains(t, err.Error(), "/roto")
}

func TestBuildRequiresOutDir(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), siteHandler(), []string{"/"}, Options{})
	require.Error(t, err)
}

func TestRenderHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, siteHandler(), []string{"/"}, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildLogsEveryPageConcurrently(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	routes := []string{"/", "/servicios", "/en/servicios", "/docs/gestion-datos/marco-teorico"}
	res, err := Build(context.Background(), siteHandler(), routes, Options{
		OutDir:  t.TempDir(),
		Workers: len(routes),
		Logger:  zap.New(core),
	})
	require.NoError(t, err)
	require.Len(t, res.Pages, len(routes))

	written := logs.FilterMessage("page written").All()
	require.Len(t, written, len(routes))
	seen := map[string]bool{}
	for _, e := range written {
		seen[e.ContextMap()["route"].(string)] = true
	}
	require.Len(t, seen, len(routes))
}
