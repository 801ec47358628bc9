package networks

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SedoClient fetches domain-parking statistics from the Sedo partner API.
// The API answers HTTP GET with an XML document; requests are signed with a
// per-partner key.
type SedoClient struct {
	Endpoint    string
	Credentials SedoCredentials
	HTTP        *http.Client
}

// NewSedoClient constructs a SedoClient with the given endpoint, credentials,
// and outbound timeout.
func NewSedoClient(endpoint string, creds SedoCredentials, timeout time.Duration) *SedoClient {
	return &SedoClient{
		Endpoint:    endpoint,
		Credentials: creds,
		HTTP:        NewHTTPClient(timeout),
	}
}

// sedoStats mirrors the upstream XML envelope.
type sedoStats struct {
	XMLName xml.Name   `xml:"SEDOSTATS"`
	Fault   string     `xml:"faultstring"`
	Items   []sedoItem `xml:"item"`
}

type sedoItem struct {
	Date     string `xml:"date"`
	Domain   string `xml:"domain"`
	C1       string `xml:"c1"`
	C2       string `xml:"c2"`
	C3       string `xml:"c3"`
	Earnings string `xml:"earnings"`
	Uniques  string `xml:"uniques"`
	Clicks   string `xml:"clicks"`
}

// Fetch retrieves statistics for [from, to] (inclusive, calendar days).
// All failures are returned as *FetchError; a fetch never yields partial
// results.
func (c *SedoClient) Fetch(ctx context.Context, from, to time.Time) ([]SedoRecord, error) {
	q := url.Values{}
	q.Set("partnerid", c.Credentials.PartnerID)
	q.Set("signkey", c.Credentials.SignKey)
	q.Set("startdate", from.UTC().Format("20060102"))
	q.Set("enddate", to.UTC().Format("20060102"))
	q.Set("output_method", "xml")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Network: "sedo", Reason: "build request", Err: err}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{Network: "sedo", Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Network: "sedo", Status: resp.StatusCode, Reason: "unexpected status"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Network: "sedo", Reason: "read body", Err: err}
	}

	var stats sedoStats
	if err := xml.Unmarshal(body, &stats); err != nil {
		return nil, &FetchError{Network: "sedo", Reason: "malformed XML", Err: err}
	}
	if f := strings.TrimSpace(stats.Fault); f != "" {
		return nil, &FetchError{Network: "sedo", Reason: "API fault: " + f}
	}

	out := make([]SedoRecord, 0, len(stats.Items))
	for _, it := range stats.Items {
		day, err := time.Parse("2006-01-02", strings.TrimSpace(it.Date))
		if err != nil {
			// Rows without a parseable date cannot be keyed; drop them here
			// rather than poisoning the batch downstream.
			continue
		}
		out = append(out, SedoRecord{
			Date:         day,
			Domain:       strings.TrimSpace(it.Domain),
			SubID1:       strings.TrimSpace(it.C1),
			SubID2:       strings.TrimSpace(it.C2),
			SubID3:       strings.TrimSpace(it.C3),
			GrossRevenue: parseFloat(it.Earnings),
			Impressions:  parseInt(it.Uniques),
			Clicks:       parseInt(it.Clicks),
		})
	}
	return out, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}
