package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/networks"
)

// seedLedger writes sedo records through the engine and folds the overview,
// so report tests read the same shapes production does.
func seedLedger(t *testing.T, svc *SyncService, recs []networks.SedoRecord) {
	t.Helper()
	if res := svc.SaveSedoRecords(context.Background(), recs, SaveOptions{}); len(res.Errors) > 0 {
		t.Fatalf("seed save: %+v", res)
	}
	if _, err := svc.SyncOverview(context.Background(), domain.NetworkSedo, ""); err != nil {
		t.Fatalf("seed fold: %v", err)
	}
}

func TestDashboardSummary_TotalsAndDerivedRatios(t *testing.T) {
	db := newTestDB(t)
	syncSvc, admin := newSyncService(t, db)
	day1 := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)
	seedLedger(t, syncSvc, []networks.SedoRecord{
		{Date: day1, Domain: "a.com", GrossRevenue: 10, Impressions: 100, Clicks: 10},
		{Date: day2, Domain: "a.com", GrossRevenue: 20, Impressions: 200, Clicks: 10},
	})

	rep := NewReportService(db, cache.New(time.Minute), 30*time.Second, 5*time.Minute)
	sum, err := rep.DashboardSummary(context.Background(), admin.ID, day1, day2)
	if err != nil {
		t.Fatalf("DashboardSummary: %v", err)
	}
	if sum.GrossRevenue != 30 || sum.NetRevenue != 24 {
		t.Fatalf("revenue = %v/%v; want 30/24", sum.GrossRevenue, sum.NetRevenue)
	}
	if sum.Impressions != 300 || sum.Clicks != 20 {
		t.Fatalf("volume = %v/%v; want 300/20", sum.Impressions, sum.Clicks)
	}
	if sum.CTR != 6.67 || sum.RPM != 100 {
		t.Fatalf("ctr/rpm = %v/%v; want 6.67/100 derived from totals", sum.CTR, sum.RPM)
	}
	if sum.From != "2026-08-10" || sum.To != "2026-08-11" {
		t.Fatalf("period = %s..%s", sum.From, sum.To)
	}
}

func TestDashboardSummary_UnknownUserGetsZeros(t *testing.T) {
	db := newTestDB(t)
	rep := NewReportService(db, cache.New(time.Minute), 30*time.Second, 5*time.Minute)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	sum, err := rep.DashboardSummary(context.Background(), "nobody", day, day)
	if err != nil {
		t.Fatalf("DashboardSummary: %v", err)
	}
	if sum.GrossRevenue != 0 || sum.Impressions != 0 || sum.CTR != 0 {
		t.Fatalf("summary for unknown user = %+v; want zeros", sum)
	}
}

func TestDashboardSummary_CachesUntilInvalidated(t *testing.T) {
	db := newTestDB(t)
	syncSvc, admin := newSyncService(t, db)
	memo := cache.New(time.Minute)
	syncSvc.Cache = memo
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedLedger(t, syncSvc, []networks.SedoRecord{
		{Date: day, Domain: "a.com", GrossRevenue: 10, Impressions: 100, Clicks: 1},
	})

	rep := NewReportService(db, memo, 30*time.Second, 5*time.Minute)
	first, err := rep.DashboardSummary(context.Background(), admin.ID, day, day)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}

	// A second read with no intervening write is served from cache: mutate
	// the table behind the service's back and observe the stale value.
	db.Exec("UPDATE revenue_overview SET gross_revenue = 999")
	second, err := rep.DashboardSummary(context.Background(), admin.ID, day, day)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if second.GrossRevenue != first.GrossRevenue {
		t.Fatalf("expected cached summary, got %v then %v", first.GrossRevenue, second.GrossRevenue)
	}

	// A sync write clears the prefix and the next read sees fresh data.
	syncSvc.invalidateCaches()
	third, err := rep.DashboardSummary(context.Background(), admin.ID, day, day)
	if err != nil {
		t.Fatalf("third read: %v", err)
	}
	if third.GrossRevenue != 999 {
		t.Fatalf("post-invalidation read = %v; want 999", third.GrossRevenue)
	}
}

func TestDomainBreakdown_OrderedByNetDescending(t *testing.T) {
	db := newTestDB(t)
	syncSvc, admin := newSyncService(t, db)
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedLedger(t, syncSvc, []networks.SedoRecord{
		{Date: day, Domain: "small.com", GrossRevenue: 1, Impressions: 10, Clicks: 1},
		{Date: day, Domain: "big.com", GrossRevenue: 50, Impressions: 500, Clicks: 5},
		{Date: day, Domain: "mid.com", GrossRevenue: 10, Impressions: 100, Clicks: 2},
	})

	rep := NewReportService(db, cache.New(time.Minute), 30*time.Second, 5*time.Minute)
	rows, err := rep.DomainBreakdown(context.Background(), admin.ID, day, day, 2)
	if err != nil {
		t.Fatalf("DomainBreakdown: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d; want limit 2", len(rows))
	}
	if rows[0].Domain != "big.com" || rows[1].Domain != "mid.com" {
		t.Fatalf("order = %s, %s; want big.com, mid.com", rows[0].Domain, rows[1].Domain)
	}
	if rows[0].RPM != 100 {
		t.Fatalf("big.com rpm = %v; want 100", rows[0].RPM)
	}
}

func TestDomainBreakdown_SamePeriodDifferentLimits(t *testing.T) {
	db := newTestDB(t)
	syncSvc, admin := newSyncService(t, db)
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	recs := make([]networks.SedoRecord, 0, 10)
	for i := 0; i < 10; i++ {
		recs = append(recs, networks.SedoRecord{
			Date: day, Domain: fmt.Sprintf("d%d.com", i), GrossRevenue: float64(i + 1), Impressions: 10,
		})
	}
	seedLedger(t, syncSvc, recs)

	rep := NewReportService(db, cache.New(time.Minute), 30*time.Second, 5*time.Minute)
	small, err := rep.DomainBreakdown(context.Background(), admin.ID, day, day, 3)
	if err != nil {
		t.Fatalf("limit 3: %v", err)
	}
	if len(small) != 3 {
		t.Fatalf("limit 3 rows = %d; want 3", len(small))
	}

	// A larger limit for the same period must not be served from the
	// smaller cached result.
	big, err := rep.DomainBreakdown(context.Background(), admin.ID, day, day, 8)
	if err != nil {
		t.Fatalf("limit 8: %v", err)
	}
	if len(big) != 8 {
		t.Fatalf("limit 8 rows = %d; want 8", len(big))
	}

	again, err := rep.DomainBreakdown(context.Background(), admin.ID, day, day, 3)
	if err != nil {
		t.Fatalf("limit 3 again: %v", err)
	}
	if len(again) != 3 {
		t.Fatalf("limit 3 repeat rows = %d; want 3", len(again))
	}
}

func TestNetworkComparison_SplitsByNetwork(t *testing.T) {
	db := newTestDB(t)
	syncSvc, admin := newSyncService(t, db)
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedLedger(t, syncSvc, []networks.SedoRecord{
		{Date: day, Domain: "a.com", GrossRevenue: 10, Impressions: 100, Clicks: 1},
	})
	if res := syncSvc.SaveYandexRecords(context.Background(), []networks.YandexRecord{
		{Date: day, Domain: "a.com", TagID: "t1", GrossRevenue: 5, Impressions: 50, Clicks: 1},
	}, SaveOptions{}); len(res.Errors) > 0 {
		t.Fatalf("yandex seed: %+v", res)
	}
	if _, err := syncSvc.SyncOverview(context.Background(), domain.NetworkYandex, ""); err != nil {
		t.Fatalf("yandex fold: %v", err)
	}

	rep := NewReportService(db, cache.New(time.Minute), 30*time.Second, 5*time.Minute)
	rows, err := rep.NetworkComparison(context.Background(), admin.ID, day, day)
	if err != nil {
		t.Fatalf("NetworkComparison: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("networks = %d; want 2", len(rows))
	}
	// Ordered by network name: sedo, yandex.
	if rows[0].Network != domain.NetworkSedo || rows[0].GrossRevenue != 10 {
		t.Fatalf("sedo row = %+v", rows[0])
	}
	if rows[1].Network != domain.NetworkYandex || rows[1].GrossRevenue != 5 {
		t.Fatalf("yandex row = %+v", rows[1])
	}
}

func TestStatus_ReportsPerNetworkFreshness(t *testing.T) {
	db := newTestDB(t)
	syncSvc, admin := newSyncService(t, db)
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedLedger(t, syncSvc, []networks.SedoRecord{
		{Date: day, Domain: "a.com", GrossRevenue: 1},
	})

	rep := NewReportService(db, cache.New(time.Minute), 30*time.Second, 5*time.Minute)
	st, err := rep.Status(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Networks) != 2 {
		t.Fatalf("networks = %d; want 2", len(st.Networks))
	}
	var sedo, yandex *NetworkStatus
	for i := range st.Networks {
		switch st.Networks[i].Network {
		case domain.NetworkSedo:
			sedo = &st.Networks[i]
		case domain.NetworkYandex:
			yandex = &st.Networks[i]
		}
	}
	if sedo == nil || !sedo.HasData || sedo.LastSyncAt == nil {
		t.Fatalf("sedo status = %+v; want data present", sedo)
	}
	if yandex == nil || yandex.HasData || yandex.LastSyncAt != nil {
		t.Fatalf("yandex status = %+v; want no data", yandex)
	}
}
