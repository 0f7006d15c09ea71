package nav

import (
	"path"
	"strings"

	"dkylabs.com/web/internal/site"
)

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	Label    string
	LabelKey string
	External bool
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Build renders navigation items with active state given the current path.
// prefix is the locale route prefix ("" or "/en") applied to internal targets.
func Build(items []site.NavItem, currentPath, prefix string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		ri := RenderedItem{
			Label:    it.Label,
			LabelKey: it.LabelKey,
			External: it.External(),
			Href:     it.Target(),
		}
		if !ri.External {
			ri.Href = Localize(prefix, ri.Href)
			ri.Active = isActive(ri.Href, currentPath)
		}
		out = append(out, ri)
	}
	return out
}

// Localize prepends the locale prefix to an internal path.
func Localize(prefix, p string) string {
	if prefix == "" {
		return p
	}
	if p == "/" || p == "" {
		return prefix
	}
	return prefix + p
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/docs" or "/docs/..."
	if currentPath == itemPath {
		return true
	}
	if strings.HasPrefix(currentPath, sectionOf(itemPath)+"/") {
		return true
	}
	return false
}

// sectionOf trims a doc leaf so "/docs/intro" lights up for every "/docs/..." page.
func sectionOf(p string) string {
	if i := strings.Index(p, "/docs/"); i >= 0 {
		return p[:i+len("/docs")]
	}
	return p
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - For known top-level sections, use nav label keys
// - For deeper segments, use a prettified segment label
func Breadcrumbs(items []site.NavItem, currentPath, prefix string) []Crumb {
	home := Localize(prefix, "/")
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: home, LabelKey: "nav.home", Active: currentPath == home}}
	if currentPath == home {
		return crumbs
	}

	// Normalize and split
	clean := path.Clean(strings.TrimPrefix(currentPath, prefix))
	if clean == "." || clean == "/" {
		return crumbs
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	top := "/" + parts[0]
	labelKey := ""
	for _, it := range items {
		if it.External() {
			continue
		}
		if it.To == top {
			labelKey = it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: Localize(prefix, top), LabelKey: labelKey, Label: titleFromSegment(parts[0]), Active: len(parts) == 1})

	// Deeper segments
	href := top
	for i := 1; i < len(parts); i++ {
		href = href + "/" + parts[i]
		crumbs = append(crumbs, Crumb{
			Href:   Localize(prefix, href),
			Label:  titleFromSegment(parts[i]),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
