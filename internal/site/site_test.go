package site

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	require.Equal(t, "DKY Labs", cfg.Title)
	require.Equal(t, "es", cfg.I18n.DefaultLocale)
	require.Equal(t, []string{"es", "en"}, cfg.I18n.Locales)
	require.Equal(t, PolicyThrow, cfg.OnBrokenLinks)
	require.Equal(t, PolicyWarn, cfg.OnBrokenMarkdownLinks)

	left := cfg.NavItems("left")
	var targets []string
	for _, it := range left {
		targets = append(targets, it.Target())
	}
	require.Equal(t, []string{"/servicios", "/sobre-nosotros", "/contacto", "/docs/intro"}, targets)

	right := cfg.NavItems("right")
	require.Len(t, right, 1)
	require.True(t, right[0].External())
	require.Equal(t, "LinkedIn", right[0].Label)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Staging Labs\nurl: https://staging.example\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Staging Labs", cfg.Title)
	require.Equal(t, "https://staging.example/servicios", cfg.AbsoluteURL("/servicios"))
	require.NotEmpty(t, cfg.Navbar.Items, "navbar falls back to defaults")
}

func TestValidateRejectsBadNavItem(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	cfg.Navbar.Items = append(cfg.Navbar.Items, NavItem{To: "/x", Href: "https://x.example", Label: "both"})
	err = cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidateRejectsUnknownPolicy(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	cfg.OnBrokenLinks = "explode"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLocalePrefixAndCopyright(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)
	require.Equal(t, "", cfg.LocalePrefix("es"))
	require.Equal(t, "/en", cfg.LocalePrefix("en"))
	require.Equal(t, "© 2026 DKY Labs.", cfg.CopyrightLine(2026))
}

func TestGuideSidebarOrder(t *testing.T) {
	t.Parallel()

	sb, err := Guide()
	require.NoError(t, err)

	want := []string{
		"intro",
		"gestion-datos/marco-teorico",
		"gestion-datos/como-llevar-a-la-practica",
		"inteligencia-artificial/marco-teorico",
		"inteligencia-artificial/modelos-generativos",
		"inteligencia-artificial/aprendizaje-de-maquina",
		"inteligencia-artificial/como-llevar-a-la-practica",
	}
	if diff := cmp.Diff(want, sb.DocIDs()); diff != "" {
		t.Fatalf("doc ids mismatch (-want +got):\n%s", diff)
	}

	for _, it := range sb.Items {
		if it.Type == ItemCategory {
			require.False(t, it.Collapsed, "category %s must start expanded", it.Label)
		}
	}
}

func TestSidebarNeighbors(t *testing.T) {
	t.Parallel()

	sb, err := Guide()
	require.NoError(t, err)

	prev, next := sb.Neighbors("intro")
	require.Equal(t, "", prev)
	require.Equal(t, "gestion-datos/marco-teorico", next)

	prev, next = sb.Neighbors("gestion-datos/como-llevar-a-la-practica")
	require.Equal(t, "gestion-datos/marco-teorico", prev)
	require.Equal(t, "inteligencia-artificial/marco-teorico", next)

	prev, next = sb.Neighbors("inteligencia-artificial/como-llevar-a-la-practica")
	require.Equal(t, "inteligencia-artificial/aprendizaje-de-maquina", prev)
	require.Equal(t, "", next)

	cat := sb.CategoryOf("inteligencia-artificial/modelos-generativos")
	require.NotNil(t, cat)
	require.Equal(t, "Inteligencia Artificial", cat.Label)
	require.Nil(t, sb.CategoryOf("intro"))
}

func TestParseSidebarsRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := parseSidebars([]byte("s:\n  - a\n  - type: category\n    label: C\n    items: [a]\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
