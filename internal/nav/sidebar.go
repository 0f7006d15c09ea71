package nav

import "dkylabs.com/web/internal/site"

// SidebarNode is the view model of a sidebar entry. Categories carry Children.
type SidebarNode struct {
	Label    string
	LabelKey string
	Href     string
	Category bool
	Expanded bool
	Active   bool
	Children []SidebarNode
}

// PagerLink points at the previous or next document in reading order.
type PagerLink struct {
	Href  string
	Label string
}

// Pager holds the previous/next links of a document page.
type Pager struct {
	Prev *PagerLink
	Next *PagerLink
}

// TitleFunc resolves a document id to its display title.
type TitleFunc func(id string) string

// DocHref returns the route of a document for the locale prefix.
func DocHref(prefix, id string) string {
	return Localize(prefix, "/docs/"+id)
}

// BuildSidebar renders the sidebar tree marking activeID. Categories holding the
// active document are always expanded, other categories follow their Collapsed flag.
func BuildSidebar(sb site.Sidebar, activeID, prefix string, title TitleFunc) []SidebarNode {
	return buildNodes(sb.Items, activeID, prefix, title)
}

func buildNodes(items []site.SidebarItem, activeID, prefix string, title TitleFunc) []SidebarNode {
	out := make([]SidebarNode, 0, len(items))
	for _, it := range items {
		if it.Type == site.ItemCategory {
			children := buildNodes(it.Items, activeID, prefix, title)
			active := false
			for _, c := range children {
				if c.Active {
					active = true
					break
				}
			}
			out = append(out, SidebarNode{
				Label:    it.Label,
				LabelKey: it.LabelKey,
				Category: true,
				Expanded: active || !it.Collapsed,
				Active:   active,
				Children: children,
			})
			continue
		}
		label := it.Label
		if label == "" && title != nil {
			label = title(it.ID)
		}
		if label == "" {
			label = titleFromSegment(it.ID)
		}
		out = append(out, SidebarNode{
			Label:  label,
			Href:   DocHref(prefix, it.ID),
			Active: it.ID == activeID,
		})
	}
	return out
}

// BuildPager returns the previous/next links around id.
func BuildPager(sb site.Sidebar, id, prefix string, title TitleFunc) Pager {
	prev, next := sb.Neighbors(id)
	var p Pager
	if prev != "" {
		p.Prev = &PagerLink{Href: DocHref(prefix, prev), Label: resolveTitle(prev, title)}
	}
	if next != "" {
		p.Next = &PagerLink{Href: DocHref(prefix, next), Label: resolveTitle(next, title)}
	}
	return p
}

// DocBreadcrumbs builds Home › Guide › Category › Document for a doc page.
func DocBreadcrumbs(sb site.Sidebar, id, prefix string, title TitleFunc) []Crumb {
	crumbs := []Crumb{
		{Href: Localize(prefix, "/"), LabelKey: "nav.home"},
		{Href: DocHref(prefix, firstDoc(sb)), LabelKey: "nav.guide"},
	}
	if cat := sb.CategoryOf(id); cat != nil {
		crumbs = append(crumbs, Crumb{LabelKey: cat.LabelKey, Label: cat.Label})
	}
	crumbs = append(crumbs, Crumb{Href: DocHref(prefix, id), Label: resolveTitle(id, title), Active: true})
	return crumbs
}

func firstDoc(sb site.Sidebar) string {
	ids := sb.DocIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func resolveTitle(id string, title TitleFunc) string {
	if title != nil {
		if t := title(id); t != "" {
			return t
		}
	}
	return titleFromSegment(id)
}
