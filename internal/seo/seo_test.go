package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Servicios | DKY Labs", PageTitle("Servicios", "DKY Labs"))
	require.Equal(t, "DKY Labs", PageTitle("", "DKY Labs"))
	require.Equal(t, "DKY Labs — Metadatos, BI e IA", PageTitle("DKY Labs — Metadatos, BI e IA", "DKY Labs"))
}

func TestBuildMeta(t *testing.T) {
	t.Parallel()

	m := Build(Input{
		SiteTitle:   "DKY Labs",
		PageTitle:   "Contacto",
		Description: "Agendá una llamada",
		Canonical:   "https://dkylabs.com/contacto",
		Lang:        "es",
		Alternates: []Alternate{
			{HrefLang: "es", Href: "https://dkylabs.com/contacto"},
			{HrefLang: "en", Href: "https://dkylabs.com/en/contacto"},
			{HrefLang: "x-default", Href: "https://dkylabs.com/contacto"},
		},
	})
	require.Equal(t, "Contacto | DKY Labs", m.Title)
	require.Equal(t, "website", m.OG.Type)
	require.Equal(t, "es_ES", m.OG.Locale)
	require.Equal(t, "summary", m.Twitter.Card)
	require.Len(t, m.Alternates, 3)
	require.Empty(t, m.Robots)

	m = Build(Input{SiteTitle: "DKY Labs", Image: "https://dkylabs.com/img/logo_small.png", NoIndex: true})
	require.Equal(t, "summary_large_image", m.Twitter.Card)
	require.Equal(t, "noindex", m.Robots)
}

func TestAddJSONLDEscapesMarkup(t *testing.T) {
	t.Parallel()

	var m Meta
	m.AddJSONLD(Organization("</script><b>", "https://dkylabs.com", "", "", nil))
	m.AddJSONLD(make(chan int))
	require.Len(t, m.JSONLD, 1)
	require.False(t, strings.Contains(string(m.JSONLD[0]), "</script>"))
}

func TestServiceOffer(t *testing.T) {
	t.Parallel()

	raw := JSON(Service("RAG Kickstart", "", "https://dkylabs.com/servicios", "DKY Labs",
		Offer{PriceMinor: 240000, Currency: "EUR"}))
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	offer := got["offers"].(map[string]any)
	require.Equal(t, "2400.00", offer["price"])
	require.Equal(t, "EUR", offer["priceCurrency"])
	require.Equal(t, "Service", got["@type"])

	require.Equal(t, "0.05", decimalPrice(5))
	require.Equal(t, "-1.50", decimalPrice(-150))
}

func TestBreadcrumbListPositions(t *testing.T) {
	t.Parallel()

	bl := BreadcrumbList([]BreadcrumbItem{{Name: "Inicio", Item: "https://dkylabs.com/"}, {Name: "Gestión de Datos"}})
	items := bl["itemListElement"].([]map[string]any)
	require.Equal(t, 1, items[0]["position"])
	require.Equal(t, 2, items[1]["position"])
	_, hasItem := items[1]["item"]
	require.False(t, hasItem)
}
