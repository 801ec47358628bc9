package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/repo"
)

// ReportService serves the read side of the dashboard from the overview
// table. Every query is scoped to one user and cached: dashboard aggregates
// for a few minutes, sync-status snapshots for a few seconds. The
// reconciliation engine clears both prefixes after each write, so a stale
// read window only exists between ledger write and cache sweep.
type ReportService struct {
	DB    *gorm.DB
	Cache *cache.Cache

	ShortTTL  time.Duration // sync-status entries
	MediumTTL time.Duration // dashboard aggregates
}

// NewReportService wires a ReportService.
func NewReportService(db *gorm.DB, c *cache.Cache, shortTTL, mediumTTL time.Duration) *ReportService {
	return &ReportService{DB: db, Cache: c, ShortTTL: shortTTL, MediumTTL: mediumTTL}
}

// Summary is the headline dashboard block for one user and period. CTR and
// RPM are derived from the summed totals, never averaged across rows.
type Summary struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	GrossRevenue float64 `json:"gross_revenue"`
	NetRevenue   float64 `json:"net_revenue"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	CTR          float64 `json:"ctr"`
	RPM          float64 `json:"rpm"`
}

// DomainRow is one entry of the per-domain breakdown.
type DomainRow struct {
	Domain       string  `json:"domain"`
	GrossRevenue float64 `json:"gross_revenue"`
	NetRevenue   float64 `json:"net_revenue"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	CTR          float64 `json:"ctr"`
	RPM          float64 `json:"rpm"`
}

// NetworkRow is one entry of the per-network comparison.
type NetworkRow struct {
	Network      string  `json:"network"`
	GrossRevenue float64 `json:"gross_revenue"`
	NetRevenue   float64 `json:"net_revenue"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	CTR          float64 `json:"ctr"`
	RPM          float64 `json:"rpm"`
}

// NetworkStatus is the sync freshness of one network for one user.
type NetworkStatus struct {
	Network    string     `json:"network"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	HasData    bool       `json:"has_data"`
}

// SyncStatus is the per-user snapshot behind the dashboard's freshness badge.
type SyncStatus struct {
	Networks []NetworkStatus `json:"networks"`
}

const dayFormat = "2006-01-02"

func periodKey(from, to time.Time) string {
	return from.Format(dayFormat) + ".." + to.Format(dayFormat)
}

// DashboardSummary returns the headline totals for userID over [from, to]
// (inclusive midnight-UTC days). Users without data get zero totals, not an
// error.
func (s *ReportService) DashboardSummary(ctx context.Context, userID string, from, to time.Time) (*Summary, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "DashboardSummary",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	from, to = domain.NormalizeDay(from), domain.NormalizeDay(to)
	key := cache.DashboardKey(userID, "summary:"+periodKey(from, to))
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if sum, ok := v.(*Summary); ok {
				return sum, nil
			}
		}
	}

	t, err := repo.SummarizeOverview(ctx, s.DB, userID, from, to)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		From:         from.Format(dayFormat),
		To:           to.Format(dayFormat),
		GrossRevenue: RoundMoney(t.GrossRevenue),
		NetRevenue:   RoundMoney(t.NetRevenue),
		Impressions:  t.Impressions,
		Clicks:       t.Clicks,
		CTR:          DeriveCTR(t.Clicks, t.Impressions),
		RPM:          DeriveRPM(t.GrossRevenue, t.Impressions),
	}
	if s.Cache != nil {
		s.Cache.Set(key, sum, s.MediumTTL)
	}
	return sum, nil
}

// DomainBreakdown returns the user's top domains by net revenue over
// [from, to], capped at limit rows (<=0 means the default of 50).
func (s *ReportService) DomainBreakdown(ctx context.Context, userID string, from, to time.Time, limit int) ([]DomainRow, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "DomainBreakdown",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if limit <= 0 {
		limit = 50
	}
	from, to = domain.NormalizeDay(from), domain.NormalizeDay(to)
	// The limit is part of the key: the same period at different limits is
	// a different result set.
	key := cache.DashboardKey(userID, fmt.Sprintf("domains:%s:%d", periodKey(from, to), limit))
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if rows, ok := v.([]DomainRow); ok {
				return rows, nil
			}
		}
	}

	totals, err := repo.OverviewByDomain(ctx, s.DB, userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]DomainRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, DomainRow{
			Domain:       t.Domain,
			GrossRevenue: RoundMoney(t.GrossRevenue),
			NetRevenue:   RoundMoney(t.NetRevenue),
			Impressions:  t.Impressions,
			Clicks:       t.Clicks,
			CTR:          DeriveCTR(t.Clicks, t.Impressions),
			RPM:          DeriveRPM(t.GrossRevenue, t.Impressions),
		})
	}
	if s.Cache != nil {
		s.Cache.Set(key, rows, s.MediumTTL)
	}
	return rows, nil
}

// NetworkComparison returns the user's totals over [from, to] split by
// network, for the side-by-side dashboard panel.
func (s *ReportService) NetworkComparison(ctx context.Context, userID string, from, to time.Time) ([]NetworkRow, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "NetworkComparison",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	from, to = domain.NormalizeDay(from), domain.NormalizeDay(to)
	key := cache.DashboardKey(userID, "networks:"+periodKey(from, to))
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if rows, ok := v.([]NetworkRow); ok {
				return rows, nil
			}
		}
	}

	totals, err := repo.OverviewByNetwork(ctx, s.DB, userID, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]NetworkRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, NetworkRow{
			Network:      t.Network,
			GrossRevenue: RoundMoney(t.GrossRevenue),
			NetRevenue:   RoundMoney(t.NetRevenue),
			Impressions:  t.Impressions,
			Clicks:       t.Clicks,
			CTR:          DeriveCTR(t.Clicks, t.Impressions),
			RPM:          DeriveRPM(t.GrossRevenue, t.Impressions),
		})
	}
	if s.Cache != nil {
		s.Cache.Set(key, rows, s.MediumTTL)
	}
	return rows, nil
}

// Status reports when each network's ledger last received data for userID.
// Cached briefly; the dashboard polls this endpoint.
func (s *ReportService) Status(ctx context.Context, userID string) (*SyncStatus, error) {
	key := cache.SyncStatusKey(userID)
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if st, ok := v.(*SyncStatus); ok {
				return st, nil
			}
		}
	}

	st := &SyncStatus{}
	for _, network := range []string{domain.NetworkSedo, domain.NetworkYandex} {
		last, err := repo.LastLedgerWrite(ctx, s.DB, network, userID)
		if err != nil {
			return nil, err
		}
		st.Networks = append(st.Networks, NetworkStatus{
			Network:    network,
			LastSyncAt: last,
			HasData:    last != nil,
		})
	}
	if s.Cache != nil {
		s.Cache.Set(key, st, s.ShortTTL)
	}
	return st, nil
}
