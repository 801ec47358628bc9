package networks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// YandexClient fetches revenue statistics from the Yandex Advertising
// Network partner API. The API answers HTTP GET with a JSON report of
// dimension/measure points, authenticated by an OAuth token header.
type YandexClient struct {
	Endpoint    string
	Credentials YandexCredentials
	HTTP        *http.Client
}

// NewYandexClient constructs a YandexClient with the given endpoint,
// credentials, and outbound timeout.
func NewYandexClient(endpoint string, creds YandexCredentials, timeout time.Duration) *YandexClient {
	return &YandexClient{
		Endpoint:    endpoint,
		Credentials: creds,
		HTTP:        NewHTTPClient(timeout),
	}
}

// yandexReport mirrors the upstream JSON envelope.
type yandexReport struct {
	Data struct {
		Points []yandexPoint `json:"points"`
	} `json:"data"`
	ErrorMessage string `json:"error_message"`
}

type yandexPoint struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// Fetch retrieves statistics for [from, to] (inclusive, calendar days).
// All failures are returned as *FetchError; a fetch never yields partial
// results.
func (c *YandexClient) Fetch(ctx context.Context, from, to time.Time) ([]YandexRecord, error) {
	q := url.Values{}
	q.Set("period", from.UTC().Format("2006-01-02")+","+to.UTC().Format("2006-01-02"))
	q.Set("dimension_field", "date|domain|tag_id|tag_name")
	q.Set("entity_field", "partner_wo_nds|shows|clicks")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Network: "yandex", Reason: "build request", Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.Credentials.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{Network: "yandex", Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Network: "yandex", Status: resp.StatusCode, Reason: "unexpected status"}
	}

	var report yandexReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, &FetchError{Network: "yandex", Reason: "malformed JSON", Err: err}
	}
	if msg := strings.TrimSpace(report.ErrorMessage); msg != "" {
		return nil, &FetchError{Network: "yandex", Reason: "API error: " + msg}
	}

	out := make([]YandexRecord, 0, len(report.Data.Points))
	for _, p := range report.Data.Points {
		day, err := time.Parse("2006-01-02", strings.TrimSpace(p.Dimensions["date"]))
		if err != nil {
			continue
		}
		rec := YandexRecord{
			Date:         day,
			Domain:       strings.TrimSpace(p.Dimensions["domain"]),
			TagID:        strings.TrimSpace(p.Dimensions["tag_id"]),
			TagName:      strings.TrimSpace(p.Dimensions["tag_name"]),
			GrossRevenue: p.Measures["partner_wo_nds"],
			Impressions:  int64(p.Measures["shows"]),
			Clicks:       int64(p.Measures["clicks"]),
		}
		out = append(out, rec)
	}
	return out, nil
}

// String implements fmt.Stringer for log-friendly client identification
// without exposing the token.
func (c *YandexClient) String() string {
	return fmt.Sprintf("yandex<%s>", c.Endpoint)
}
