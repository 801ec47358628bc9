// Package networks contains the HTTP clients for the third-party ad-network
// APIs (Sedo domain parking, Yandex Advertising Network) and the normalized
// raw-record shapes they produce. The wire formats are fixed by the third
// parties; each client translates its network's response into the
// per-network record variant consumed by the reconciliation engine.
//
// A whole-fetch failure (timeout, non-2xx status, malformed body, API fault)
// is surfaced as a *FetchError so the caller can abort that network's sync
// run without touching the ledger.
package networks

import (
	"fmt"
	"net/http"
	"time"
)

// SedoRecord is one raw Sedo statistics row. Domain may be empty for
// network-aggregate rows. The three sub-ids distinguish parking campaigns
// within the same domain and day.
type SedoRecord struct {
	Date         time.Time
	Domain       string
	SubID1       string
	SubID2       string
	SubID3       string
	GrossRevenue float64
	Impressions  int64
	Clicks       int64
}

// YandexRecord is one raw Yandex Advertising Network statistics row.
// TagID/TagName identify the ad block placement.
type YandexRecord struct {
	Date         time.Time
	Domain       string
	TagID        string
	TagName      string
	GrossRevenue float64
	Impressions  int64
	Clicks       int64
}

// SedoCredentials authenticate one Sedo partner account.
type SedoCredentials struct {
	PartnerID string `json:"partner_id"`
	SignKey   string `json:"sign_key"`
}

// Configured reports whether both fields are present.
func (c SedoCredentials) Configured() bool { return c.PartnerID != "" && c.SignKey != "" }

// YandexCredentials authenticate one Yandex partner account.
type YandexCredentials struct {
	Token string `json:"token"`
}

// Configured reports whether the OAuth token is present.
func (c YandexCredentials) Configured() bool { return c.Token != "" }

// FetchError describes a whole-fetch failure against an upstream API.
type FetchError struct {
	Network string // "sedo" or "yandex"
	Status  int    // HTTP status, 0 when the request itself failed
	Reason  string
	Err     error // underlying transport/parse error, may be nil
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s fetch failed: status %d: %s", e.Network, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s fetch failed: %s", e.Network, e.Reason)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *FetchError) Unwrap() error { return e.Err }

// NewHTTPClient builds the outbound client used by both network clients.
// The timeout bounds the whole exchange; there is no streamed or partial
// consumption of upstream responses.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
