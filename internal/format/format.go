package format

import (
	"fmt"
	"strings"
	"time"
)

// FmtCurrency formats amount in minor units for basic currencies.
// EUR always uses "." for thousands and "," for decimals, whatever lang is:
// FmtCurrency(190000, "EUR", "en") => "€1.900"
func FmtCurrency(minor int64, currency, lang string) string {
	currency = strings.ToUpper(currency)
	switch currency {
	case "EUR":
		sep, dec := ".", ","
		neg := minor < 0
		if neg {
			minor = -minor
		}
		out := "€" + thousandSep(minor/100, sep)
		if cents := minor % 100; cents != 0 {
			out += dec + fmt.Sprintf("%02d", cents)
		}
		if neg {
			return "-" + out
		}
		return out
	case "JPY":
		return fmt.Sprintf("¥%s", thousandSep(minor, ","))
	case "USD":
		// assume cents; format with 2 decimals
		neg := minor < 0
		if neg {
			minor = -minor
		}
		head := thousandSep(minor/100, ",")
		tail := fmt.Sprintf("%02d", minor%100)
		if neg {
			return "-$" + head + "." + tail
		}
		return "$" + head + "." + tail
	default:
		// generic minor units
		return fmt.Sprintf("%s %s", currency, thousandSep(minor, ","))
	}
}

func thousandSep(n int64, sep string) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FmtWeeks renders a duration in weeks with the right plural.
func FmtWeeks(n int, lang string) string {
	switch strings.ToLower(lang) {
	case "es":
		if n == 1 {
			return "1 semana"
		}
		return fmt.Sprintf("%d semanas", n)
	default:
		if n == 1 {
			return "1 week"
		}
		return fmt.Sprintf("%d weeks", n)
	}
}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FmtDate formats time in a locale-friendly long form.
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), monthsES[t.Month()-1], t.Year())
	default:
		return t.Format("Jan 2, 2006")
	}
}
