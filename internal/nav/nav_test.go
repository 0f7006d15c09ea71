package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dkylabs.com/web/internal/site"
)

func navItems(t *testing.T) []site.NavItem {
	t.Helper()
	cfg, err := site.Default()
	require.NoError(t, err)
	return cfg.Navbar.Items
}

func TestBuildMarksActive(t *testing.T) {
	t.Parallel()

	items := Build(navItems(t), "/servicios", "")
	active := map[string]bool{}
	for _, it := range items {
		active[it.Href] = it.Active
	}
	require.True(t, active["/servicios"])
	require.False(t, active["/contacto"])
	require.False(t, active["https://www.linkedin.com/in/roberto-villar-5b1a4b3b"])
}

func TestBuildLocalizesInternalTargets(t *testing.T) {
	t.Parallel()

	items := Build(navItems(t), "/en/docs/gestion-datos/marco-teorico", "/en")
	hrefs := make([]string, 0, len(items))
	for _, it := range items {
		hrefs = append(hrefs, it.Href)
		if it.Href == "/en/docs/intro" {
			require.True(t, it.Active, "guide entry should be active for any doc page")
		}
	}
	require.Contains(t, hrefs, "/en/servicios")
	require.Contains(t, hrefs, "https://www.linkedin.com/in/roberto-villar-5b1a4b3b")
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs(navItems(t), "/", "")
	require.Len(t, crumbs, 1)
	require.True(t, crumbs[0].Active)

	crumbs = Breadcrumbs(navItems(t), "/en/contacto", "/en")
	require.Len(t, crumbs, 2)
	require.Equal(t, "/en", crumbs[0].Href)
	require.Equal(t, "nav.contact", crumbs[1].LabelKey)
	require.Equal(t, "/en/contacto", crumbs[1].Href)
	require.True(t, crumbs[1].Active)

	crumbs = Breadcrumbs(navItems(t), "/sobre-mi", "")
	require.Len(t, crumbs, 2)
	require.Equal(t, "", crumbs[1].LabelKey)
	require.Equal(t, "Sobre mi", crumbs[1].Label)
}

func TestSidebarAndPager(t *testing.T) {
	t.Parallel()

	sb, err := site.Guide()
	require.NoError(t, err)
	titles := func(id string) string {
		if id == "intro" {
			return "Introducción"
		}
		return ""
	}

	nodes := BuildSidebar(sb, "gestion-datos/marco-teorico", "", titles)
	require.Len(t, nodes, 3)
	require.Equal(t, "Introducción", nodes[0].Label)
	require.Equal(t, "/docs/intro", nodes[0].Href)
	require.True(t, nodes[1].Category)
	require.True(t, nodes[1].Active)
	require.True(t, nodes[1].Expanded)
	require.True(t, nodes[1].Children[0].Active)
	require.False(t, nodes[2].Active)
	require.True(t, nodes[2].Expanded, "uncollapsed categories stay open")

	pager := BuildPager(sb, "intro", "/en", titles)
	require.Nil(t, pager.Prev)
	require.NotNil(t, pager.Next)
	require.Equal(t, "/en/docs/gestion-datos/marco-teorico", pager.Next.Href)

	crumbs := DocBreadcrumbs(sb, "inteligencia-artificial/modelos-generativos", "", titles)
	require.Len(t, crumbs, 4)
	require.Equal(t, "/docs/intro", crumbs[1].Href)
	require.Equal(t, "sidebar.artificial_intelligence", crumbs[2].LabelKey)
	require.True(t, crumbs[3].Active)
}
