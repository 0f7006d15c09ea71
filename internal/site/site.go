package site

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml sidebars.yaml
var defaults embed.FS

// ErrInvalidConfig is returned when a site configuration fails validation.
var ErrInvalidConfig = errors.New("site: invalid config")

// Policy controls how a class of broken links is reported.
type Policy string

const (
	PolicyThrow  Policy = "throw"
	PolicyWarn   Policy = "warn"
	PolicyIgnore Policy = "ignore"
)

func (p Policy) valid() bool {
	switch p {
	case PolicyThrow, PolicyWarn, PolicyIgnore:
		return true
	}
	return false
}

// Config is the declarative site metadata: title, locales, navbar, footer and theme.
type Config struct {
	Title                 string  `yaml:"title"`
	Tagline               string  `yaml:"tagline"`
	URL                   string  `yaml:"url"`
	BaseURL               string  `yaml:"base_url"`
	Favicon               string  `yaml:"favicon"`
	OnBrokenLinks         Policy  `yaml:"on_broken_links"`
	OnBrokenMarkdownLinks Policy  `yaml:"on_broken_markdown_links"`
	I18n                  I18n    `yaml:"i18n"`
	Navbar                Navbar  `yaml:"navbar"`
	Footer                Footer  `yaml:"footer"`
	Contact               Contact `yaml:"contact"`
	Theme                 Theme   `yaml:"theme"`
}

type I18n struct {
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
}

type Navbar struct {
	Title string    `yaml:"title"`
	Logo  Logo      `yaml:"logo"`
	Items []NavItem `yaml:"items"`
}

type Logo struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

// NavItem is a navbar entry. To is an internal path, Href an external URL.
type NavItem struct {
	To       string `yaml:"to"`
	Href     string `yaml:"href"`
	Label    string `yaml:"label"`
	LabelKey string `yaml:"label_key"`
	Position string `yaml:"position"`
}

// External reports whether the entry points outside the site.
func (n NavItem) External() bool { return n.Href != "" }

// Target returns the link destination regardless of kind.
func (n NavItem) Target() string {
	if n.External() {
		return n.Href
	}
	return n.To
}

type Footer struct {
	Style     string        `yaml:"style"`
	Links     []FooterGroup `yaml:"links"`
	Copyright string        `yaml:"copyright"`
}

type FooterGroup struct {
	Title    string       `yaml:"title"`
	TitleKey string       `yaml:"title_key"`
	Items    []FooterLink `yaml:"items"`
}

type FooterLink struct {
	To       string `yaml:"to"`
	Href     string `yaml:"href"`
	Label    string `yaml:"label"`
	LabelKey string `yaml:"label_key"`
}

// Contact holds the outbound links shared by several pages.
type Contact struct {
	BookingURL string   `yaml:"booking_url"`
	Email      string   `yaml:"email"`
	LinkedIn   string   `yaml:"linkedin"`
	Locations  []string `yaml:"locations"`
}

// MailTo returns the mailto: URL for the contact email.
func (c Contact) MailTo() string {
	if c.Email == "" {
		return ""
	}
	return "mailto:" + c.Email
}

type Theme struct {
	ColorMode ColorMode `yaml:"color_mode"`
	Palette   Palette   `yaml:"palette"`
}

type ColorMode struct {
	DefaultMode               string `yaml:"default_mode"`
	RespectPrefersColorScheme bool   `yaml:"respect_prefers_color_scheme"`
}

type Palette struct {
	Primary        string `yaml:"primary"`
	PrimaryDark    string `yaml:"primary_dark"`
	Secondary      string `yaml:"secondary"`
	Surface        string `yaml:"surface"`
	Text           string `yaml:"text"`
	HeroBackground string `yaml:"hero_background"`
	HeroText       string `yaml:"hero_text"`
}

// CSSVar is a single custom property emitted in the layout <style> block.
type CSSVar struct {
	Name  string
	Value string
}

// CSSVars lists the palette as CSS custom properties, skipping unset colors.
func (p Palette) CSSVars() []CSSVar {
	all := []CSSVar{
		{Name: "--dky-color-primary", Value: p.Primary},
		{Name: "--dky-color-primary-dark", Value: p.PrimaryDark},
		{Name: "--dky-color-secondary", Value: p.Secondary},
		{Name: "--dky-color-surface", Value: p.Surface},
		{Name: "--dky-color-text", Value: p.Text},
		{Name: "--dky-hero-background", Value: p.HeroBackground},
		{Name: "--dky-hero-text", Value: p.HeroText},
	}
	out := all[:0]
	for _, v := range all {
		if strings.TrimSpace(v.Value) != "" {
			out = append(out, v)
		}
	}
	return out
}

// Default returns the configuration compiled into the binary.
func Default() (Config, error) {
	raw, err := defaults.ReadFile("site.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("site: read defaults: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("site: parse defaults: %w", err)
	}
	return cfg, cfg.Validate()
}

// Load reads an override file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("site: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("site: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the invariants the renderer relies on.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Title) == "" {
		problems = append(problems, "title is required")
	}
	if len(c.I18n.Locales) == 0 {
		problems = append(problems, "at least one locale is required")
	} else if !c.IsLocale(c.I18n.DefaultLocale) {
		problems = append(problems, fmt.Sprintf("default locale %q not in locales", c.I18n.DefaultLocale))
	}
	for i, it := range c.Navbar.Items {
		if (it.To == "") == (it.Href == "") {
			problems = append(problems, "navbar item "+strconv.Itoa(i)+": exactly one of to/href must be set")
		}
		if it.To != "" && !strings.HasPrefix(it.To, "/") {
			problems = append(problems, "navbar item "+strconv.Itoa(i)+": to must be an absolute path")
		}
		switch it.Position {
		case "", "left", "right":
		default:
			problems = append(problems, fmt.Sprintf("navbar item %d: unknown position %q", i, it.Position))
		}
	}
	if !c.OnBrokenLinks.valid() {
		problems = append(problems, fmt.Sprintf("unknown on_broken_links policy %q", c.OnBrokenLinks))
	}
	if !c.OnBrokenMarkdownLinks.valid() {
		problems = append(problems, fmt.Sprintf("unknown on_broken_markdown_links policy %q", c.OnBrokenMarkdownLinks))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// NavItems returns the navbar entries for a side ("left" or "right"). Items
// without a position are treated as left.
func (c Config) NavItems(position string) []NavItem {
	out := make([]NavItem, 0, len(c.Navbar.Items))
	for _, it := range c.Navbar.Items {
		pos := it.Position
		if pos == "" {
			pos = "left"
		}
		if pos == position {
			out = append(out, it)
		}
	}
	return out
}

// CopyrightLine expands the {year} placeholder of the footer copyright.
func (c Config) CopyrightLine(year int) string {
	return strings.ReplaceAll(c.Footer.Copyright, "{year}", strconv.Itoa(year))
}

// IsLocale reports whether lang is one of the configured locales.
func (c Config) IsLocale(lang string) bool {
	return slices.Contains(c.I18n.Locales, lang)
}

// LocalePrefix returns the route prefix for lang: empty for the default locale, "/<lang>" otherwise.
func (c Config) LocalePrefix(lang string) string {
	if lang == "" || lang == c.I18n.DefaultLocale {
		return ""
	}
	return "/" + lang
}

// AbsoluteURL joins the public site URL with an internal path.
func (c Config) AbsoluteURL(p string) string {
	base := strings.TrimRight(c.URL, "/")
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}
