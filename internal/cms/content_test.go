package cms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"docs/es/intro.md": {Data: []byte(`---
title: Introducción
summary: Punto de partida
updated_at: 2025-09-03
---
# Introducción

## Qué vas a encontrar

Leé el [marco teórico](gestion-datos/marco-teorico.md#alcance) y el [inexistente](nada.md).

<script>alert(1)</script>

[externo](https://example.com)
`)},
		"docs/es/gestion-datos/marco-teorico.md": {Data: []byte(`---
title: Marco teórico
---
## Alcance

Volver a la [introducción](../intro.md).
`)},
		"docs/en/intro.md": {Data: []byte(`---
title: Introduction
---
See the [framework](gestion-datos/marco-teorico.md).
`)},
		"legal/es/terminos.md": {Data: []byte("\ufeff---\ntitle: Términos\neffective_date: 2025-01-01\n---\nTexto.\n")},
	}
}

func TestGetContentPageRendersMarkdown(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	page, err := c.GetContentPage(context.Background(), KindDocs, "intro", "es")
	require.NoError(t, err)
	require.Equal(t, "Introducción", page.Title)
	require.Equal(t, "es", page.Lang)
	require.Equal(t, 2025, page.UpdatedAt.Year())

	html := string(page.HTML)
	require.Contains(t, html, `href="/docs/gestion-datos/marco-teorico#alcance"`)
	require.Contains(t, html, `href="nada.md"`, "broken references keep their raw target")
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, "nofollow")
	require.Contains(t, html, `target="_blank"`)

	require.Len(t, page.Headings, 1)
	require.Equal(t, 2, page.Headings[0].Level)
	require.Equal(t, "Qué vas a encontrar", page.Headings[0].Text)
	require.NotEmpty(t, page.Headings[0].ID)
	require.Contains(t, html, `id="`+page.Headings[0].ID+`"`)

	broken := page.BrokenLinks()
	require.Len(t, broken, 1)
	require.Equal(t, "nada.md", broken[0].Raw)
	require.Len(t, page.Links, 2)
}

func TestRelativeLinksResolveFromDocumentDirectory(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	page, err := c.GetContentPage(context.Background(), KindDocs, "gestion-datos/marco-teorico", "es")
	require.NoError(t, err)
	require.Contains(t, string(page.HTML), `href="/docs/intro"`)
	require.Empty(t, page.BrokenLinks())
}

func TestDocRouteUsesRequestedLanguage(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	c.SetDocRoute(func(lang, id string) string {
		if lang == "en" {
			return "/en/docs/" + id
		}
		return "/docs/" + id
	})

	page, err := c.GetContentPage(context.Background(), KindDocs, "intro", "en")
	require.NoError(t, err)
	require.Equal(t, "en", page.Lang)
	require.Contains(t, string(page.HTML), `href="/en/docs/gestion-datos/marco-teorico"`)

	// no English translation: falls back to Spanish but routes stay English
	page, err = c.GetContentPage(context.Background(), KindDocs, "gestion-datos/marco-teorico", "en")
	require.NoError(t, err)
	require.Equal(t, "es", page.Lang)
	require.Contains(t, string(page.HTML), `href="/en/docs/intro"`)
}

func TestGetContentPageNotFound(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	for _, slug := range []string{"missing", "../etc/passwd", "", "a//b"} {
		_, err := c.GetContentPage(context.Background(), KindDocs, slug, "es")
		require.True(t, errors.Is(err, ErrNotFound), "slug %q", slug)
	}
	require.False(t, c.Exists(context.Background(), KindLegal, "privacidad", "es"))
	require.True(t, c.Exists(context.Background(), KindLegal, "terminos", "en"))
}

func TestFrontMatterWithBOM(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	page, err := c.GetContentPage(context.Background(), KindLegal, "terminos", "es")
	require.NoError(t, err)
	require.Equal(t, "Términos", page.Title)
	require.Equal(t, 2025, page.EffectiveDate.Year())
	require.Contains(t, string(page.HTML), "Texto.")
}

func TestRemoteContentPreferredAndCached(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/content/docs/intro" || r.URL.Query().Get("lang") != "es" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Remota","body":"## Hola\n\ncuerpo remoto"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, testFS())
	page, err := c.GetContentPage(context.Background(), KindDocs, "intro", "es")
	require.NoError(t, err)
	require.Equal(t, "Remota", page.Title)
	require.Contains(t, string(page.HTML), "cuerpo remoto")

	_, err = c.GetContentPage(context.Background(), KindDocs, "intro", "es")
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load())

	c.InvalidateCache()
	_, err = c.GetContentPage(context.Background(), KindDocs, "intro", "es")
	require.NoError(t, err)
	require.Equal(t, int32(2), hits.Load())
}

func TestRemoteFailureFallsBackToLocal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, testFS())
	page, err := c.GetContentPage(context.Background(), KindDocs, "intro", "es")
	require.NoError(t, err)
	require.Equal(t, "Introducción", page.Title)
}

func TestHTMLFormatIsSanitized(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"legal/es/privacidad.md": {Data: []byte("---\nformat: html\n---\n<p onclick=\"x()\">Hola</p><iframe src=\"x\"></iframe>\n")},
	}
	c := NewClient("", fsys)
	page, err := c.GetContentPage(context.Background(), KindLegal, "privacidad", "es")
	require.NoError(t, err)
	html := strings.TrimSpace(string(page.HTML))
	require.Equal(t, "<p>Hola</p>", html)
	require.Equal(t, "Privacidad", page.Title)
}

func TestHasLocalDoesNotFallBack(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	require.True(t, c.HasLocal(KindDocs, "gestion-datos/marco-teorico", "es"))
	require.True(t, c.Exists(context.Background(), KindDocs, "gestion-datos/marco-teorico", "en"))
	require.False(t, c.HasLocal(KindDocs, "gestion-datos/marco-teorico", "en"))
	require.False(t, c.HasLocal(KindDocs, "gestion-datos", "es"))
	require.False(t, c.HasLocal(KindDocs, "../docs/es/intro", "es"))

	enOnly := fstest.MapFS{"docs/en/solo.md": {Data: []byte("# Solo\n")}}
	c = NewClient("", enOnly)
	require.True(t, c.Exists(context.Background(), KindDocs, "solo", "es"))
	require.False(t, c.HasLocal(KindDocs, "solo", "es"))
}

func TestSetCacheDurationDefault(t *testing.T) {
	t.Parallel()

	c := NewClient("", testFS())
	c.SetCacheDuration(time.Second)
	require.Equal(t, time.Second, c.cacheTTL)
	c.SetCacheDuration(0)
	require.Equal(t, defaultCacheTTL, c.cacheTTL)
}
