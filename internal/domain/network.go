package domain

import (
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// Supported ad networks. Each network has its own ledger table and its own
// raw-record shape; adding a network means adding a ledger model and a
// client under internal/networks.
const (
	NetworkSedo   = "sedo"
	NetworkYandex = "yandex"
)

// Ledger status values. "Estimated" rows come from intraday/preliminary
// network reports and are overwritten in place once the network finalizes
// the day.
const (
	StatusEstimated = "Estimated"
	StatusFinal     = "Final"
)

// KnownNetwork reports whether s names a supported network.
func KnownNetwork(s string) bool {
	switch s {
	case NetworkSedo, NetworkYandex:
		return true
	}
	return false
}

// NormalizeDomainName canonicalizes a domain for registry lookups and ledger
// keys: trims whitespace, strips a single trailing dot, lowercases, and
// converts unicode labels to their ASCII (punycode) form so that the same
// domain reported in different spellings lands on the same key.
//
// Invalid or empty input is returned trimmed and lowercased; resolution then
// simply misses the registry and falls back per policy.
func NormalizeDomainName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	s = strings.ToLower(s)
	if s == "" {
		return ""
	}
	if ascii, err := idna.Lookup.ToASCII(s); err == nil {
		return ascii
	}
	return s
}

// NormalizeDay strips the time-of-day component and returns midnight UTC of
// the same calendar day, so repeated syncs of "today" land on the same
// ledger key regardless of when they ran.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
