package utils

import (
	"testing"
	"time"
)

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"", 10, 10},
		{"x", 5, 5},
		{"-7", 0, -7},
		{"3.5", 9, 9},
		{" 1", 9, 9}, // Atoi does not trim
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	def := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-08-24", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
		{"", def},
		{"24-08-2026", def},
		{"2026-13-01", def},
		{"not a date", def},
	}
	for _, tc := range cases {
		if got := ParseDay(tc.in, def); !got.Equal(tc.want) {
			t.Fatalf("ParseDay(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
