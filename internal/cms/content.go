package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const (
	KindDocs  = "docs"
	KindLegal = "legal"
)

// ContentPage represents a localized document sourced from the remote CMS or local markdown.
type ContentPage struct {
	Kind          string
	Slug          string
	Lang          string
	Title         string
	SidebarLabel  string
	Summary       string
	Body          string
	Format        string // "markdown" (default) or "html"
	HTML          template.HTML
	Headings      []Heading
	Links         []DocLink
	EffectiveDate time.Time
	UpdatedAt     time.Time
	SEO           ContentSEO
}

// Heading is a rendered h2/h3 used for the "on this page" list.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// DocLink is a markdown cross-reference to another document.
type DocLink struct {
	Raw    string
	Target string
	Broken bool
}

// BrokenLinks returns the cross-references whose target document does not exist.
func (p ContentPage) BrokenLinks() []DocLink {
	var out []DocLink
	for _, l := range p.Links {
		if l.Broken {
			out = append(out, l)
		}
	}
	return out
}

// ContentSEO holds optional metadata overrides for documents.
type ContentSEO struct {
	Title       string
	Description string
	OGImage     string
}

type contentFrontMatter struct {
	Title         string                `yaml:"title"`
	SidebarLabel  string                `yaml:"sidebar_label"`
	Summary       string                `yaml:"summary"`
	Lang          string                `yaml:"lang"`
	Format        string                `yaml:"format"`
	EffectiveDate string                `yaml:"effective_date"`
	UpdatedAt     string                `yaml:"updated_at"`
	SEO           contentFrontMatterSEO `yaml:"seo"`
}

type contentFrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

const (
	defaultContentFormat = "markdown"
	defaultLang          = "es"
	defaultCacheTTL      = 5 * time.Minute
)

type contentCacheEntry struct {
	page    ContentPage
	expires time.Time
}

// Client provides read-only access to documents: an optional remote CMS first,
// then markdown files under <kind>/<lang>/<slug>.md in the content filesystem.
type Client struct {
	baseURL  string
	http     *http.Client
	fsys     fs.FS
	fallback string
	markdown *markdownRenderer
	logger   *zap.Logger
	docRoute func(lang, id string) string

	cacheMu  sync.RWMutex
	cache    map[string]contentCacheEntry
	cacheTTL time.Duration
}

// NewClient constructs a Client reading local documents from fsys. When baseURL is
// empty only local content is served.
func NewClient(baseURL string, fsys fs.FS) *Client {
	baseURL = strings.TrimSpace(baseURL)
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 5 * time.Second},
		fsys:     fsys,
		fallback: defaultLang,
		logger:   zap.NewNop(),
		docRoute: func(_, id string) string { return "/docs/" + id },
		cache:    map[string]contentCacheEntry{},
		cacheTTL: defaultCacheTTL,
	}
	c.markdown = newMarkdownRenderer()
	return c
}

// SetLogger attaches a logger used for remote fetch failures and broken cross-references.
func (c *Client) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.logger = l
}

// SetFallbackLang configures the language tried after the requested one.
func (c *Client) SetFallbackLang(lang string) {
	if lang = normalizeLang(lang); lang != "" {
		c.fallback = lang
	}
}

// SetDocRoute configures how markdown cross-references are turned into URLs.
func (c *Client) SetDocRoute(fn func(lang, id string) string) {
	if fn != nil {
		c.docRoute = fn
	}
}

// SetCacheDuration overrides the in-memory cache duration. Non-positive values
// restore the default of five minutes.
func (c *Client) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = defaultCacheTTL
	}
	c.cacheMu.Lock()
	c.cacheTTL = d
	c.cacheMu.Unlock()
}

// InvalidateCache drops every cached document.
func (c *Client) InvalidateCache() {
	c.cacheMu.Lock()
	c.cache = map[string]contentCacheEntry{}
	c.cacheMu.Unlock()
}

// GetContentPage fetches a localized document, consulting the remote CMS when configured,
// otherwise falling back to local markdown.
func (c *Client) GetContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = KindDocs
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = normalizeLang(lang)
	if lang == "" {
		lang = c.fallback
	}

	cacheKey := strings.Join([]string{kind, lang, slug}, "|")
	if page, ok := c.cachedContent(cacheKey); ok {
		return page, nil
	}

	page, err := c.fetchContentPage(ctx, kind, slug, lang)
	if err != nil {
		return ContentPage{}, err
	}
	c.storeContent(cacheKey, page)
	return cloneContentPage(page), nil
}

// Exists reports whether a local or remote document is available for any language.
func (c *Client) Exists(ctx context.Context, kind, slug, lang string) bool {
	_, err := c.GetContentPage(ctx, kind, slug, lang)
	return err == nil
}

// HasLocal reports whether <kind>/<lang>/<slug>.md exists in the content
// filesystem. Unlike Exists it never falls back to another language.
func (c *Client) HasLocal(kind, slug, lang string) bool {
	slug = sanitizeSlug(slug)
	if slug == "" || c.fsys == nil {
		return false
	}
	info, err := fs.Stat(c.fsys, path.Join(kind, normalizeLang(lang), slug+".md"))
	return err == nil && !info.IsDir()
}

func (c *Client) fetchContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	if c.baseURL != "" {
		page, err := c.fetchContentPageRemote(ctx, kind, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cms remote fetch failed, using local content",
				zap.String("kind", kind), zap.String("slug", slug), zap.String("lang", lang), zap.Error(err))
		}
	}
	return c.localContentPage(kind, slug, lang)
}

func (c *Client) fetchContentPageRemote(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", kind, slug)
	if err != nil {
		return ContentPage{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ContentPage{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return ContentPage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ContentPage{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return ContentPage{}, fmt.Errorf("cms: content remote status %d", resp.StatusCode)
	}

	var payload struct {
		Kind          string    `json:"kind"`
		Slug          string    `json:"slug"`
		Lang          string    `json:"lang"`
		Title         string    `json:"title"`
		SidebarLabel  string    `json:"sidebar_label"`
		Summary       string    `json:"summary"`
		Body          string    `json:"body"`
		Format        string    `json:"format"`
		EffectiveDate time.Time `json:"effective_date"`
		UpdatedAt     time.Time `json:"updated_at"`
		SEO           struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"og_image"`
		} `json:"seo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ContentPage{}, err
	}
	if strings.TrimSpace(payload.Body) == "" {
		return ContentPage{}, fmt.Errorf("cms: empty body for %s/%s", kind, slug)
	}
	page := ContentPage{
		Kind:          firstNonEmpty(payload.Kind, kind),
		Slug:          firstNonEmpty(payload.Slug, slug),
		Lang:          firstNonEmpty(payload.Lang, lang),
		Title:         payload.Title,
		SidebarLabel:  payload.SidebarLabel,
		Summary:       payload.Summary,
		Body:          payload.Body,
		Format:        firstNonEmpty(payload.Format, defaultContentFormat),
		EffectiveDate: payload.EffectiveDate,
		UpdatedAt:     payload.UpdatedAt,
		SEO: ContentSEO{
			Title:       payload.SEO.Title,
			Description: payload.SEO.Description,
			OGImage:     payload.SEO.OGImage,
		},
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if err := c.renderBody(&page, lang); err != nil {
		return ContentPage{}, err
	}
	return page, nil
}

func (c *Client) localContentPage(kind, slug, lang string) (ContentPage, error) {
	if c.fsys == nil {
		return ContentPage{}, ErrNotFound
	}
	for _, candidate := range c.langPriority(lang) {
		page, err := c.readContentMarkdown(kind, slug, candidate, lang)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound) {
			continue
		}
		// For other errors (parse issues), stop early.
		return ContentPage{}, err
	}
	return ContentPage{}, ErrNotFound
}

func (c *Client) langPriority(lang string) []string {
	priority := []string{lang}
	for _, l := range []string{c.fallback, "es", "en"} {
		dup := false
		for _, p := range priority {
			if p == l {
				dup = true
				break
			}
		}
		if !dup {
			priority = append(priority, l)
		}
	}
	return priority
}

// readContentMarkdown loads <kind>/<lang>/<slug>.md. Cross-references are routed
// for routeLang, the language the page was requested in.
func (c *Client) readContentMarkdown(kind, slug, lang, routeLang string) (ContentPage, error) {
	file := path.Join(kind, lang, slug+".md")
	data, err := fs.ReadFile(c.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentPage{}, ErrNotFound
		}
		return ContentPage{}, err
	}
	var modTime time.Time
	if info, statErr := fs.Stat(c.fsys, file); statErr == nil {
		modTime = info.ModTime()
	}
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := ContentPage{
		Kind:         kind,
		Slug:         slug,
		Lang:         firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:        strings.TrimSpace(front.Title),
		SidebarLabel: strings.TrimSpace(front.SidebarLabel),
		Summary:      strings.TrimSpace(front.Summary),
		Body:         body,
		Format:       strings.TrimSpace(front.Format),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if page.Format == "" {
		page.Format = defaultContentFormat
	}
	page.EffectiveDate = parseContentDate(front.EffectiveDate)
	page.UpdatedAt = parseContentDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = modTime
	}
	if page.Title == "" {
		// fall back to slug prettified
		page.Title = prettifySlug(path.Base(slug))
	}
	if err := c.renderBody(&page, routeLang); err != nil {
		return ContentPage{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	return page, nil
}

// renderBody fills HTML, Headings and Links from Body.
func (c *Client) renderBody(page *ContentPage, routeLang string) error {
	if page.Format == "html" {
		page.HTML = template.HTML(c.markdown.sanitize(page.Body))
		return nil
	}
	res, err := c.markdown.render(page.Body, linkContext{
		kind:   page.Kind,
		slug:   page.Slug,
		lang:   routeLang,
		route:  c.docRoute,
		exists: c.localDocExists,
	})
	if err != nil {
		return err
	}
	page.HTML = res.html
	page.Headings = res.headings
	page.Links = res.links
	for _, l := range page.BrokenLinks() {
		c.logger.Warn("broken markdown link",
			zap.String("doc", page.Kind+"/"+page.Slug), zap.String("lang", page.Lang), zap.String("link", l.Raw))
	}
	return nil
}

// localDocExists checks the content filesystem without rendering.
func (c *Client) localDocExists(kind, id, lang string) bool {
	if c.fsys == nil {
		return false
	}
	for _, candidate := range c.langPriority(lang) {
		if _, err := fs.Stat(c.fsys, path.Join(kind, candidate, id+".md")); err == nil {
			return true
		}
	}
	return false
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// sanitizeSlug lower-cases and trims a slug. Nested slugs ("a/b") are allowed,
// parent references are not.
func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.Contains(slug, "\\") || strings.Contains(slug, "//") {
		return ""
	}
	return slug
}

func (c *Client) cachedContent(key string) (ContentPage, bool) {
	now := time.Now()
	c.cacheMu.RLock()
	entry, ok := c.cache[key]
	c.cacheMu.RUnlock()
	if !ok || now.After(entry.expires) {
		return ContentPage{}, false
	}
	return cloneContentPage(entry.page), true
}

func (c *Client) storeContent(key string, page ContentPage) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache[key] = contentCacheEntry{
		page:    cloneContentPage(page),
		expires: time.Now().Add(c.cacheTTL),
	}
}

func cloneContentPage(src ContentPage) ContentPage {
	cp := src
	if src.Headings != nil {
		cp.Headings = append([]Heading(nil), src.Headings...)
	}
	if src.Links != nil {
		cp.Links = append([]DocLink(nil), src.Links...)
	}
	return cp
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
