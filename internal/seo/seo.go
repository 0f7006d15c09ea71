package seo

import (
	"html/template"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link to the same page in another language.
// HrefLang "x-default" marks the default-locale version.
type Alternate struct {
	HrefLang string
	Href     string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []template.JS
}

// Input describes a page for Build. URLs must already be absolute.
type Input struct {
	SiteTitle   string
	PageTitle   string
	Description string
	Canonical   string
	Image       string
	Type        string
	Lang        string
	Alternates  []Alternate
	NoIndex     bool
}

// PageTitle joins a page title with the site title ("Servicios | DKY Labs").
// Titles that already carry the site name are left alone.
func PageTitle(page, site string) string {
	page = strings.TrimSpace(page)
	switch {
	case page == "":
		return site
	case page == site, strings.HasPrefix(page, site+" "):
		return page
	}
	return page + " | " + site
}

// Build fills OpenGraph and Twitter tags from the page description.
func Build(in Input) Meta {
	title := PageTitle(in.PageTitle, in.SiteTitle)
	typ := in.Type
	if typ == "" {
		typ = "website"
	}
	card := "summary"
	if in.Image != "" {
		card = "summary_large_image"
	}
	m := Meta{
		Title:       title,
		Description: in.Description,
		Canonical:   in.Canonical,
		OG: OpenGraph{
			Title:       title,
			Description: in.Description,
			Image:       in.Image,
			Type:        typ,
			URL:         in.Canonical,
			SiteName:    in.SiteTitle,
			Locale:      ogLocale(in.Lang),
		},
		Twitter: Twitter{
			Card:  card,
			Image: in.Image,
		},
		Alternates: append([]Alternate(nil), in.Alternates...),
	}
	if in.NoIndex {
		m.Robots = "noindex"
	}
	return m
}

// AddJSONLD appends a structured data payload. Payloads that fail to marshal are skipped.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		// encoding/json escapes <, > and & so the payload is safe inside a script element
		m.JSONLD = append(m.JSONLD, template.JS(s))
	}
}

func ogLocale(lang string) string {
	switch lang {
	case "es":
		return "es_ES"
	case "en":
		return "en_US"
	case "":
		return ""
	default:
		return lang
	}
}
