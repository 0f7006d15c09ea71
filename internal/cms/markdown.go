package cms

import (
	"bytes"
	"html/template"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// linkContext tells the transformer how to route cross-references of one document.
type linkContext struct {
	kind   string
	slug   string
	lang   string
	route  func(lang, id string) string
	exists func(kind, id, lang string) bool

	headings []Heading
	links    []DocLink
}

type renderResult struct {
	html     template.HTML
	headings []Heading
	links    []DocLink
}

var linkCtxKey = parser.NewContextKey()

type markdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownRenderer() *markdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(docLinkTransformer{}, 100)),
		),
		// raw HTML is allowed through goldmark and cleaned by the policy below
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &markdownRenderer{md: md, policy: newDocHTMLPolicy()}
}

func (m *markdownRenderer) render(src string, lc linkContext) (renderResult, error) {
	pc := parser.NewContext()
	pc.Set(linkCtxKey, &lc)
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf, parser.WithContext(pc)); err != nil {
		return renderResult{}, err
	}
	return renderResult{
		html:     template.HTML(m.policy.SanitizeBytes(buf.Bytes())),
		headings: lc.headings,
		links:    lc.links,
	}, nil
}

func (m *markdownRenderer) sanitize(raw string) string {
	return m.policy.Sanitize(raw)
}

var headingIDPattern = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

func newDocHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code", "pre")
	policy.AllowAttrs("loading").OnElements("img")
	policy.AllowAttrs("id").Matching(headingIDPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.RequireNoFollowOnLinks(false)
	policy.RequireNoFollowOnFullyQualifiedLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// docLinkTransformer collects h2/h3 headings and rewrites relative ".md" links
// to document routes.
type docLinkTransformer struct{}

func (docLinkTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	lc, ok := pc.Get(linkCtxKey).(*linkContext)
	if !ok || lc == nil {
		return
	}
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != 2 && node.Level != 3 {
				break
			}
			id := ""
			if v, ok := node.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			lc.headings = append(lc.headings, Heading{Level: node.Level, ID: id, Text: nodeText(node, source)})
		case *ast.Link:
			if rewritten, link, ok := lc.resolve(string(node.Destination)); ok {
				lc.links = append(lc.links, link)
				if !link.Broken {
					node.Destination = []byte(rewritten)
				}
			}
		}
		return ast.WalkContinue, nil
	})
}

// resolve maps a markdown link target to a document route. ok is false for
// links that are not document cross-references.
func (lc *linkContext) resolve(dest string) (string, DocLink, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", DocLink{}, false
	}
	if !strings.HasSuffix(u.Path, ".md") {
		return "", DocLink{}, false
	}
	p := strings.TrimSuffix(u.Path, ".md")
	var id string
	switch {
	case strings.HasPrefix(p, "/"):
		id = strings.TrimPrefix(path.Clean(p), "/")
		id = strings.TrimPrefix(id, lc.kind+"/")
	default:
		id = path.Join(path.Dir(lc.slug), p)
	}
	link := DocLink{Raw: dest, Target: id}
	if id == "" || id == "." || strings.HasPrefix(id, "..") || lc.exists == nil || !lc.exists(lc.kind, id, lc.lang) {
		link.Broken = true
		return "", link, true
	}
	target := lc.route(lc.lang, id)
	if u.Fragment != "" {
		target += "#" + u.Fragment
	}
	return target, link, true
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
