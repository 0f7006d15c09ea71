package format

import (
	"testing"
	"time"
)

func TestFmtCurrency(t *testing.T) {
	cases := []struct {
		minor    int64
		currency string
		lang     string
		want     string
	}{
		{190000, "EUR", "es", "€1.900"},
		{240000, "eur", "es", "€2.400"},
		{120000, "EUR", "es", "€1.200"},
		{120000, "EUR", "en", "€1.200"},
		{95050, "EUR", "en", "€950,50"},
		{95050, "EUR", "es", "€950,50"},
		{-190000, "EUR", "es", "-€1.900"},
		{12345, "JPY", "ja", "¥12,345"},
		{123456, "USD", "en", "$1,234.56"},
		{500, "GBP", "en", "GBP 500"},
	}
	for _, tc := range cases {
		if got := FmtCurrency(tc.minor, tc.currency, tc.lang); got != tc.want {
			t.Errorf("FmtCurrency(%d, %q, %q) = %q, want %q", tc.minor, tc.currency, tc.lang, got, tc.want)
		}
	}
}

func TestFmtWeeks(t *testing.T) {
	if got := FmtWeeks(1, "es"); got != "1 semana" {
		t.Fatalf("got %q", got)
	}
	if got := FmtWeeks(2, "es"); got != "2 semanas" {
		t.Fatalf("got %q", got)
	}
	if got := FmtWeeks(2, "en"); got != "2 weeks" {
		t.Fatalf("got %q", got)
	}
}

func TestFmtDate(t *testing.T) {
	d := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	if got := FmtDate(d, "es"); got != "3 de septiembre de 2025" {
		t.Fatalf("got %q", got)
	}
	if got := FmtDate(d, "en"); got != "Sep 3, 2025" {
		t.Fatalf("got %q", got)
	}
}
