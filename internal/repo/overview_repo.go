// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// cross-network revenue_overview table and the grouped read queries that
// power the reporting layer.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/domain"
)

// UpsertOverview writes one overview row for its unique
// (date, network, domain, user) key: existing rows are overwritten in full,
// missing rows are inserted. Rebuilding is idempotent: writing the same
// aggregates twice leaves the table unchanged.
func UpsertOverview(ctx context.Context, db *gorm.DB, row *domain.RevenueOverview) error {
	var existing domain.RevenueOverview
	err := db.WithContext(ctx).
		Where("date = ? AND network = ? AND domain = ? AND user_id = ?",
			row.Date, row.Network, row.Domain, row.UserID).
		First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	case err == gorm.ErrRecordNotFound:
		row.ID = uuid.NewString()
		row.CreatedAt = time.Now().UTC()
	default:
		return err
	}
	return db.WithContext(ctx).Save(row).Error
}

// ClearOverview deletes the overview rows for one network, optionally scoped
// to one user (userID "" clears the whole network). The rebuild deletes
// before re-deriving so rows whose ledger ownership moved elsewhere do not
// linger under the previous owner.
func ClearOverview(ctx context.Context, db *gorm.DB, network, userID string) error {
	q := db.WithContext(ctx).Where("network = ?", network)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	return q.Delete(&domain.RevenueOverview{}).Error
}

// OverviewTotals carries summed dashboard metrics for one reporting bucket.
type OverviewTotals struct {
	GrossRevenue float64
	NetRevenue   float64
	Impressions  int64
	Clicks       int64
}

// SummarizeOverview sums a user's overview rows over [from, to] (inclusive,
// midnight-UTC dates). Zero totals are returned for users without data.
func SummarizeOverview(ctx context.Context, db *gorm.DB, userID string, from, to time.Time) (OverviewTotals, error) {
	var t OverviewTotals
	err := db.WithContext(ctx).
		Model(&domain.RevenueOverview{}).
		Select("COALESCE(SUM(gross_revenue),0) AS gross_revenue, "+
			"COALESCE(SUM(net_revenue),0) AS net_revenue, "+
			"COALESCE(SUM(impressions),0) AS impressions, "+
			"COALESCE(SUM(clicks),0) AS clicks").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Scan(&t).Error
	return t, err
}

// DomainTotals is one per-domain reporting bucket.
type DomainTotals struct {
	Domain       string  `json:"domain"`
	GrossRevenue float64 `json:"gross_revenue"`
	NetRevenue   float64 `json:"net_revenue"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
}

// OverviewByDomain sums a user's overview rows over [from, to] grouped by
// domain, ordered by net revenue descending, capped at limit rows.
func OverviewByDomain(ctx context.Context, db *gorm.DB, userID string, from, to time.Time, limit int) ([]DomainTotals, error) {
	q := db.WithContext(ctx).
		Model(&domain.RevenueOverview{}).
		Select("domain, "+
			"SUM(gross_revenue) AS gross_revenue, "+
			"SUM(net_revenue) AS net_revenue, "+
			"SUM(impressions) AS impressions, "+
			"SUM(clicks) AS clicks").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("domain").
		Order("net_revenue DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []DomainTotals
	err := q.Scan(&out).Error
	return out, err
}

// NetworkTotals is one per-network reporting bucket.
type NetworkTotals struct {
	Network      string  `json:"network"`
	GrossRevenue float64 `json:"gross_revenue"`
	NetRevenue   float64 `json:"net_revenue"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
}

// OverviewByNetwork sums a user's overview rows over [from, to] grouped by
// network, for side-by-side network comparison.
func OverviewByNetwork(ctx context.Context, db *gorm.DB, userID string, from, to time.Time) ([]NetworkTotals, error) {
	var out []NetworkTotals
	err := db.WithContext(ctx).
		Model(&domain.RevenueOverview{}).
		Select("network, "+
			"SUM(gross_revenue) AS gross_revenue, "+
			"SUM(net_revenue) AS net_revenue, "+
			"SUM(impressions) AS impressions, "+
			"SUM(clicks) AS clicks").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("network").
		Order("network ASC").
		Scan(&out).Error
	return out, err
}
