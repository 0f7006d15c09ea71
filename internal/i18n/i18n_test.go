package i18n

import (
	"testing"
	"testing/fstest"

	"dkylabs.com/web/locales"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"l/es.json": {Data: []byte(`{"nav.services":"Servicios","only.es":"solo"}`)},
		"l/en.json": {Data: []byte(`{"nav.services":"Services"}`)},
	}
	b, err := Load(fsys, "l", "es", []string{"es", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := testBundle(t)
	if got := b.Resolve("es;q=0.8, en;q=0.9"); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
	if got := b.Resolve("es-UY,es;q=0.9,en;q=0.5"); got != "es" {
		t.Fatalf("expected es, got %s", got)
	}
}

func TestResolveFallsBack(t *testing.T) {
	b := testBundle(t)
	for _, header := range []string{"", "ja", "not a header;;", "de-DE,de;q=0.9"} {
		if got := b.Resolve(header); got != "es" {
			t.Fatalf("Resolve(%q) = %s, want es", header, got)
		}
	}
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
	b := testBundle(t)
	if got := b.T("en", "nav.services"); got != "Services" {
		t.Fatalf("got %q", got)
	}
	if got := b.T("en", "only.es"); got != "solo" {
		t.Fatalf("expected fallback translation, got %q", got)
	}
	if got := b.T("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
	if b.Has("en", "only.es") {
		t.Fatalf("Has must not consult the fallback")
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{"l/en.json": {Data: []byte(`{}`)}}
	if _, err := Load(fsys, "l", "es", []string{"es", "en"}); err == nil {
		t.Fatalf("expected error when fallback bundle is missing")
	}
}

func TestShippedBundlesHaveSameKeys(t *testing.T) {
	b, err := Load(locales.FS, ".", "es", []string{"es", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for key := range b.dict["es"] {
		if !b.Has("en", key) {
			t.Errorf("en bundle missing key %q", key)
		}
	}
	for key := range b.dict["en"] {
		if !b.Has("es", key) {
			t.Errorf("es bundle missing key %q", key)
		}
	}
}
