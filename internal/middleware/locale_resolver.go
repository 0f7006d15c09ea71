package middleware

import (
	"net/http"
	"strings"

	"dkylabs.com/web/internal/i18n"
)

// Locale fixes the page language for a route group. The URL prefix decides the
// language of a page; Accept-Language is not consulted.
func Locale(lang string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// NegotiatedLang picks a language for responses that do not belong to a locale
// route group, such as the not-found page: a known locale prefix in the path wins,
// then Accept-Language, then the bundle fallback.
func NegotiatedLang(bundle *i18n.Bundle, r *http.Request) string {
	if lang := LangFromContext(r.Context()); lang != "" {
		return lang
	}
	seg := strings.TrimPrefix(r.URL.Path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if seg != "" && seg != bundle.Fallback() && bundle.IsSupported(seg) {
		return seg
	}
	return bundle.Resolve(r.Header.Get("Accept-Language"))
}

// Lang returns the page language from context, defaulting to fallback.
func Lang(r *http.Request, fallback string) string {
	if lang := LangFromContext(r.Context()); lang != "" {
		return lang
	}
	return fallback
}
