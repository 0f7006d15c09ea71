package handlers

import (
	"dkylabs.com/web/internal/nav"
	"dkylabs.com/web/internal/seo"
	"dkylabs.com/web/internal/site"
)

// PageData is the view model executed by the shared layout. Exactly one of the
// per-page payloads is set.
type PageData struct {
	Lang      string
	Prefix    string
	Path      string
	Site      site.Config
	SEO       seo.Meta
	Analytics Analytics
	Dev       bool

	Nav         []nav.RenderedItem
	NavRight    []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Languages   []LangLink
	Footer      []FooterGroup
	Copyright   string
	ThemeVars   []site.CSSVar

	// Optional per-page view model payloads
	Home     *HomeData
	Services []ServiceCard
	Team     []TeamCard
	Practice *PracticeData
	Doc      *DocData
	Content  *ContentData
}

// LangLink points at the current page in another language.
type LangLink struct {
	Lang   string
	Href   string
	Active bool
}

// FooterGroup is a rendered footer column.
type FooterGroup struct {
	Title    string
	TitleKey string
	Links    []nav.RenderedItem
}

// BuildFooter localizes internal footer links for prefix.
func BuildFooter(groups []site.FooterGroup, prefix string) []FooterGroup {
	out := make([]FooterGroup, 0, len(groups))
	for _, g := range groups {
		fg := FooterGroup{Title: g.Title, TitleKey: g.TitleKey}
		for _, l := range g.Items {
			ri := nav.RenderedItem{Label: l.Label, LabelKey: l.LabelKey}
			if l.Href != "" {
				ri.Href = l.Href
				ri.External = true
			} else {
				ri.Href = nav.Localize(prefix, l.To)
			}
			fg.Links = append(fg.Links, ri)
		}
		out = append(out, fg)
	}
	return out
}

// BuildLanguages returns one link per locale pointing at the same page. path is
// the route without locale prefix.
func BuildLanguages(cfg site.Config, path, current string) []LangLink {
	out := make([]LangLink, 0, len(cfg.I18n.Locales))
	for _, lang := range cfg.I18n.Locales {
		out = append(out, LangLink{
			Lang:   lang,
			Href:   nav.Localize(cfg.LocalePrefix(lang), path),
			Active: lang == current,
		})
	}
	return out
}

// Alternates returns the hreflang links of a page, x-default pointing at the
// default locale.
func Alternates(cfg site.Config, path string) []seo.Alternate {
	out := make([]seo.Alternate, 0, len(cfg.I18n.Locales)+1)
	for _, lang := range cfg.I18n.Locales {
		out = append(out, seo.Alternate{
			HrefLang: lang,
			Href:     cfg.AbsoluteURL(nav.Localize(cfg.LocalePrefix(lang), path)),
		})
	}
	out = append(out, seo.Alternate{HrefLang: "x-default", Href: cfg.AbsoluteURL(path)})
	return out
}
