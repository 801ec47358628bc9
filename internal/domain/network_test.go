package domain

import (
	"testing"
	"time"
)

func TestKnownNetwork(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{NetworkSedo, true},
		{NetworkYandex, true},
		{"adsense", false},
		{"Sedo", false}, // case-sensitive, callers normalize
		{"", false},
	}
	for _, tc := range cases {
		if got := KnownNetwork(tc.in); got != tc.want {
			t.Fatalf("KnownNetwork(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDomainName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"example.com", "example.com"},
		{"Example.COM", "example.com"},
		{"  example.com  ", "example.com"},
		{"example.com.", "example.com"},
		{"WWW.Example.COM.", "www.example.com"},
		{"münchen.de", "xn--mnchen-3ya.de"},
		{"xn--mnchen-3ya.de", "xn--mnchen-3ya.de"},
		{"", ""},
		{"   ", ""},
		// idna rejects the underscore label; the lowercased form passes through
		{"bad_label.com", "bad_label.com"},
	}
	for _, tc := range cases {
		if got := NormalizeDomainName(tc.in); got != tc.want {
			t.Fatalf("NormalizeDomainName(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{
			time.Date(2026, 8, 24, 15, 30, 45, 999, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			// 01:30 UTC+3 is 22:30 UTC the previous day
			time.Date(2026, 8, 24, 1, 30, 0, 0, loc),
			time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		if got := NormalizeDay(tc.in); !got.Equal(tc.want) {
			t.Fatalf("NormalizeDay(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
