package handlers

import (
	"dkylabs.com/web/internal/cms"
	"dkylabs.com/web/internal/format"
	"dkylabs.com/web/internal/nav"
)

// DocData is the view model of a guide document.
type DocData struct {
	ID      string
	Page    cms.ContentPage
	Sidebar []nav.SidebarNode
	Pager   nav.Pager
	Updated string
	// Fallback is set when the document is shown in another language than requested.
	Fallback bool
}

// ContentData is the view model of a standalone markdown page (terms, privacy).
type ContentData struct {
	Page      cms.ContentPage
	Effective string
	Fallback  bool
}

// BuildDocData assembles a document page.
func BuildDocData(id, lang string, page cms.ContentPage, sidebar []nav.SidebarNode, pager nav.Pager) *DocData {
	d := &DocData{
		ID:       id,
		Page:     page,
		Sidebar:  sidebar,
		Pager:    pager,
		Fallback: page.Lang != lang,
	}
	if !page.UpdatedAt.IsZero() {
		d.Updated = format.FmtDate(page.UpdatedAt, lang)
	}
	return d
}

// BuildContentData assembles a legal page.
func BuildContentData(lang string, page cms.ContentPage) *ContentData {
	d := &ContentData{Page: page, Fallback: page.Lang != lang}
	if !page.EffectiveDate.IsZero() {
		d.Effective = format.FmtDate(page.EffectiveDate, lang)
	}
	return d
}
