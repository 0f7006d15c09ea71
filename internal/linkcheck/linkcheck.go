// Package linkcheck finds internal links and images in rendered pages that do not
// resolve to a route or a static asset.
package linkcheck

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"dkylabs.com/web/internal/site"
)

type Kind string

const (
	KindLink     Kind = "link"
	KindImage    Kind = "image"
	KindMarkdown Kind = "markdown"
	KindSidebar  Kind = "sidebar"
)

// Broken is one unresolved reference found on Page.
type Broken struct {
	Page   string
	Target string
	Kind   Kind
}

func (b Broken) String() string {
	return fmt.Sprintf("%s: %s %q", b.Page, b.Kind, b.Target)
}

// Ref is a URL-valued attribute found in a page.
type Ref struct {
	Tag   string
	Attr  string
	Value string
}

// Checker resolves references against a fixed route set and an asset filesystem.
type Checker struct {
	routes map[string]struct{}
	assets fs.FS
}

// New builds a Checker. routes are site paths ("/", "/en/servicios"); assets is
// the public filesystem whose root maps to "/".
func New(routes []string, assets fs.FS) *Checker {
	c := &Checker{routes: make(map[string]struct{}, len(routes)), assets: assets}
	for _, r := range routes {
		c.routes[normalizePath(r)] = struct{}{}
	}
	return c
}

// CheckPage parses an HTML page served at page and returns its broken references.
func (c *Checker) CheckPage(page string, body io.Reader) ([]Broken, error) {
	refs, err := ExtractRefs(body)
	if err != nil {
		return nil, fmt.Errorf("linkcheck: parse %s: %w", page, err)
	}
	base, err := url.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("linkcheck: page url %q: %w", page, err)
	}
	var out []Broken
	seen := map[string]struct{}{}
	for _, ref := range refs {
		target, internal := c.internalPath(base, ref.Value)
		if !internal {
			continue
		}
		kind := KindLink
		switch {
		case strings.HasSuffix(target, ".md"):
			kind = KindMarkdown
		case ref.Tag == "img":
			kind = KindImage
		}
		if kind != KindMarkdown && c.Exists(target) {
			continue
		}
		key := string(kind) + " " + ref.Value
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Broken{Page: page, Target: ref.Value, Kind: kind})
	}
	return out, nil
}

// Exists reports whether p is a known route or a file in the asset filesystem.
func (c *Checker) Exists(p string) bool {
	p = normalizePath(p)
	if _, ok := c.routes[p]; ok {
		return true
	}
	if c.assets == nil || p == "/" {
		return false
	}
	info, err := fs.Stat(c.assets, strings.TrimPrefix(p, "/"))
	return err == nil && !info.IsDir()
}

// internalPath resolves raw against base and returns the site path when raw
// points inside the site.
func (c *Checker) internalPath(base *url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		// unparsable hrefs count as internal and fail resolution
		return raw, true
	}
	if u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", false
	}
	resolved := base.ResolveReference(u)
	return resolved.Path, true
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	p = path.Clean("/" + p)
	return p
}

// ExtractRefs returns the href of a and link elements and the src of img elements.
func ExtractRefs(r io.Reader) ([]Ref, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var refs []Ref
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			attr := ""
			switch n.Data {
			case "a", "link":
				attr = "href"
			case "img":
				attr = "src"
			}
			if attr != "" {
				for _, a := range n.Attr {
					if a.Key == attr {
						refs = append(refs, Ref{Tag: n.Data, Attr: attr, Value: a.Val})
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return refs, nil
}

// Report collects broken references across pages.
type Report struct {
	Pages  int
	Broken []Broken
}

// Add appends broken references.
func (r *Report) Add(b ...Broken) {
	r.Broken = append(r.Broken, b...)
}

// Sort orders findings by page, then target, for stable output.
func (r *Report) Sort() {
	sort.SliceStable(r.Broken, func(i, j int) bool {
		if r.Broken[i].Page != r.Broken[j].Page {
			return r.Broken[i].Page < r.Broken[j].Page
		}
		return r.Broken[i].Target < r.Broken[j].Target
	})
}

// policyFor returns the policy governing kind.
func policyFor(kind Kind, links, markdown site.Policy) site.Policy {
	if kind == KindMarkdown {
		return markdown
	}
	return links
}

// Filter returns the findings whose policy equals p.
func (r Report) Filter(p, links, markdown site.Policy) []Broken {
	var out []Broken
	for _, b := range r.Broken {
		if policyFor(b.Kind, links, markdown) == p {
			out = append(out, b)
		}
	}
	return out
}

// Err returns a *BrokenLinksError holding the findings governed by the throw policy.
func (r Report) Err(links, markdown site.Policy) error {
	fatal := r.Filter(site.PolicyThrow, links, markdown)
	if len(fatal) == 0 {
		return nil
	}
	return &BrokenLinksError{Broken: fatal}
}

// BrokenLinksError fails a build or check.
type BrokenLinksError struct {
	Broken []Broken
}

func (e *BrokenLinksError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d broken link(s):", len(e.Broken))
	for _, b := range e.Broken {
		sb.WriteString("\n  - ")
		sb.WriteString(b.String())
	}
	return sb.String()
}
