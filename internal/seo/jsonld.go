package seo

import (
	"encoding/json"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns an Organization schema. sameAs lists profile URLs.
func Organization(name, url, logoURL, email string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if email != "" {
		m["email"] = email
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			entry["item"] = it.Item
		}
		el = append(el, entry)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Offer describes the price of a service. Price is in minor units.
type Offer struct {
	PriceMinor int64
	Currency   string
	URL        string
}

// Service returns a Service schema with a single Offer, provided by the organization.
func Service(name, description, url, providerName string, offer Offer) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Service",
		"name":     name,
		"provider": map[string]any{"@type": "Organization", "name": providerName},
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	if offer.Currency != "" {
		o := map[string]any{
			"@type":         "Offer",
			"price":         decimalPrice(offer.PriceMinor),
			"priceCurrency": offer.Currency,
		}
		if offer.URL != "" {
			o["url"] = offer.URL
		}
		m["offers"] = o
	}
	return m
}

// Person returns a Person schema working for the organization.
func Person(name, jobTitle, imageURL, worksFor string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     name,
	}
	if jobTitle != "" {
		m["jobTitle"] = jobTitle
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if worksFor != "" {
		m["worksFor"] = map[string]any{"@type": "Organization", "name": worksFor}
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// Article returns an Article schema payload. Dates are RFC 3339 or empty.
func Article(headline, description, url, lang, publisher, dateModified string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
		m["mainEntityOfPage"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	if publisher != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": publisher}
	}
	if dateModified != "" {
		m["dateModified"] = dateModified
	}
	return m
}

// decimalPrice renders minor units as a schema.org price ("1900.00").
func decimalPrice(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	cents := minor % 100
	pad := ""
	if cents < 10 {
		pad = "0"
	}
	return sign + strconv.FormatInt(minor/100, 10) + "." + pad + strconv.FormatInt(cents, 10)
}
