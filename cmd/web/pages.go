package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dkylabs.com/web/internal/cms"
	"dkylabs.com/web/internal/handlers"
	mw "dkylabs.com/web/internal/middleware"
	"dkylabs.com/web/internal/nav"
	"dkylabs.com/web/internal/seo"
)

// pageData builds the layout view model of route (without locale prefix) in lang.
func (a *app) pageData(route, lang, titleKey, descKey string) *handlers.PageData {
	prefix := a.site.LocalePrefix(lang)
	full := nav.Localize(prefix, route)
	d := &handlers.PageData{
		Lang:        lang,
		Prefix:      prefix,
		Path:        full,
		Site:        a.site,
		Analytics:   a.analytics,
		Dev:         a.opts.Dev,
		Nav:         nav.Build(a.site.NavItems("left"), full, prefix),
		NavRight:    nav.Build(a.site.NavItems("right"), full, prefix),
		Breadcrumbs: nav.Breadcrumbs(a.site.Navbar.Items, full, prefix),
		Languages:   handlers.BuildLanguages(a.site, route, lang),
		Footer:      handlers.BuildFooter(a.site.Footer.Links, prefix),
		Copyright:   a.site.CopyrightLine(a.now().Year()),
		ThemeVars:   a.site.Theme.Palette.CSSVars(),
	}
	d.SEO = seo.Build(a.seoInput(route, lang, titleKey, descKey))
	d.SEO.AddJSONLD(a.organization())
	return d
}

func (a *app) seoInput(route, lang, titleKey, descKey string) seo.Input {
	return seo.Input{
		SiteTitle:   a.site.Title,
		PageTitle:   a.bundle.T(lang, titleKey),
		Description: a.bundle.T(lang, descKey),
		Canonical:   a.site.AbsoluteURL(nav.Localize(a.site.LocalePrefix(lang), route)),
		Lang:        lang,
		Alternates:  handlers.Alternates(a.site, route),
	}
}

func (a *app) organization() map[string]any {
	return seo.Organization(a.site.Title, a.site.AbsoluteURL("/"), a.site.AbsoluteURL(a.site.Navbar.Logo.Src),
		a.site.Contact.Email, []string{a.site.Contact.LinkedIn})
}

func (a *app) handlePage(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := mw.Lang(r, a.defaultLang())
		d := a.pageData(p.route, lang, p.titleKey, p.descKey)
		if p.fill != nil {
			p.fill(a, d)
		}
		a.render(w, r, p.template, d, http.StatusOK)
	}
}

func (a *app) fillHome(d *handlers.PageData) {
	d.Home = handlers.BuildHomeData(d.Lang)
	d.Breadcrumbs = nil
	d.SEO.AddJSONLD(seo.WebSite(a.site.Title, a.site.AbsoluteURL(d.Path), d.Lang))
}

func (a *app) fillServices(d *handlers.PageData) {
	d.Services = handlers.BuildServiceCards(d.Lang)
	for _, s := range d.Services {
		url := a.site.AbsoluteURL(d.Path) + "#" + s.Slug
		d.SEO.AddJSONLD(seo.Service(s.Name, strings.Join(s.Deliverables, ". "), url, a.site.Title,
			seo.Offer{PriceMinor: s.PriceMinor, Currency: s.Currency, URL: url}))
	}
}

func (a *app) fillAbout(d *handlers.PageData) {
	d.Team = handlers.BuildTeamCards(d.Lang)
	for _, m := range d.Team {
		var sameAs []string
		for _, l := range m.Links {
			sameAs = append(sameAs, l.Href)
		}
		d.SEO.AddJSONLD(seo.Person(m.Name, m.Role, a.site.AbsoluteURL(m.Photo), a.site.Title, sameAs))
	}
}

func (a *app) fillPractice(d *handlers.PageData) {
	d.Practice = handlers.BuildPracticeData(d.Lang)
}

func (a *app) handleLegal(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := mw.Lang(r, a.defaultLang())
		doc, err := a.cms.GetContentPage(r.Context(), cms.KindLegal, slug, lang)
		if err != nil {
			a.contentError(w, r, err)
			return
		}
		d := a.pageData("/"+slug, lang, "", "")
		a.applyDocumentSEO(d, doc)
		d.Content = handlers.BuildContentData(lang, doc)
		a.render(w, r, "content", d, http.StatusOK)
	}
}

func (a *app) handleDocsIndex(w http.ResponseWriter, r *http.Request) {
	ids := a.guide.DocIDs()
	if len(ids) == 0 {
		a.handleNotFound(w, r)
		return
	}
	lang := mw.Lang(r, a.defaultLang())
	http.Redirect(w, r, nav.DocHref(a.site.LocalePrefix(lang), ids[0]), http.StatusFound)
}

func (a *app) handleDoc(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(chi.URLParam(r, "*"), "/")
	if !a.guide.Contains(id) {
		a.handleNotFound(w, r)
		return
	}
	lang := mw.Lang(r, a.defaultLang())
	doc, err := a.cms.GetContentPage(r.Context(), cms.KindDocs, id, lang)
	if err != nil {
		a.contentError(w, r, err)
		return
	}
	prefix := a.site.LocalePrefix(lang)
	title := a.docTitles(r.Context(), lang)

	d := a.pageData("/docs/"+id, lang, "", "")
	a.applyDocumentSEO(d, doc)
	d.SEO.OG.Type = "article"
	d.Breadcrumbs = nav.DocBreadcrumbs(a.guide, id, prefix, title)
	d.Doc = handlers.BuildDocData(id, lang, doc,
		nav.BuildSidebar(a.guide, id, prefix, title),
		nav.BuildPager(a.guide, id, prefix, title))

	modified := ""
	if !doc.UpdatedAt.IsZero() {
		modified = doc.UpdatedAt.Format(time.DateOnly)
	}
	d.SEO.AddJSONLD(seo.Article(doc.Title, doc.Summary, d.SEO.Canonical, doc.Lang, a.site.Title, modified))
	d.SEO.AddJSONLD(seo.BreadcrumbList(a.breadcrumbItems(d)))
	a.render(w, r, "doc", d, http.StatusOK)
}

// applyDocumentSEO replaces the title and description with the document's.
func (a *app) applyDocumentSEO(d *handlers.PageData, doc cms.ContentPage) {
	title := firstNonEmpty(doc.SEO.Title, doc.Title)
	d.SEO.Title = seo.PageTitle(title, a.site.Title)
	d.SEO.OG.Title = d.SEO.Title
	if desc := firstNonEmpty(doc.SEO.Description, doc.Summary); desc != "" {
		d.SEO.Description = desc
		d.SEO.OG.Description = desc
	}
	if img := doc.SEO.OGImage; img != "" {
		d.SEO.OG.Image = a.site.AbsoluteURL(img)
		d.SEO.Twitter.Image = d.SEO.OG.Image
		d.SEO.Twitter.Card = "summary_large_image"
	}
}

func (a *app) breadcrumbItems(d *handlers.PageData) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(d.Breadcrumbs))
	for _, c := range d.Breadcrumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = a.bundle.T(d.Lang, c.LabelKey)
		}
		item := seo.BreadcrumbItem{Name: name}
		if c.Href != "" {
			item.Item = a.site.AbsoluteURL(c.Href)
		}
		items = append(items, item)
	}
	return items
}

// docTitles resolves sidebar labels from document front matter.
func (a *app) docTitles(ctx context.Context, lang string) nav.TitleFunc {
	return func(id string) string {
		doc, err := a.cms.GetContentPage(ctx, cms.KindDocs, id, lang)
		if err != nil {
			return ""
		}
		return firstNonEmpty(doc.SidebarLabel, doc.Title)
	}
}

func (a *app) contentError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, cms.ErrNotFound) {
		a.handleNotFound(w, r)
		return
	}
	mw.LoggerFrom(r.Context()).Error("load content", zap.String("path", r.URL.Path), zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, "content unavailable")
}

func (a *app) handleNotFound(w http.ResponseWriter, r *http.Request) {
	lang := mw.NegotiatedLang(a.bundle, r)
	d := a.pageData("/", lang, "notfound.title", "notfound.body")
	d.Path = r.URL.Path
	d.Breadcrumbs = nil
	in := a.seoInput("/", lang, "notfound.title", "notfound.body")
	in.Canonical = ""
	in.Alternates = nil
	in.NoIndex = true
	d.SEO = seo.Build(in)
	d.SEO.AddJSONLD(a.organization())
	w.Header().Set("Content-Language", lang)
	a.render(w, r, "notfound", d, http.StatusNotFound)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
