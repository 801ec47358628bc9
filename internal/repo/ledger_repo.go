// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the per-network
// revenue ledgers (sedo_ledger, yandex_ledger).
//
// Upsert protocol: the reconciliation engine looks a row up by its natural
// key *ignoring the owning user* (FindSedoLedger / FindYandexLedger), then
// either overwrites that row, re-pointing user_id when ownership changed,
// or inserts a fresh one. At most one ledger row exists per
// (date, domain, sub-fields); the owning user on that row may change between
// syncs. The ledgers are written by the reconciliation engine only.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/domain"
)

// FindSedoLedger fetches the Sedo ledger row for the natural key
// (date, domain, sub1, sub2, sub3) regardless of owner, or ErrNotFound.
func FindSedoLedger(ctx context.Context, db *gorm.DB, date time.Time, domainName, sub1, sub2, sub3 string) (*domain.SedoLedger, error) {
	var row domain.SedoLedger
	err := db.WithContext(ctx).
		Where("date = ? AND domain = ? AND sub_id1 = ? AND sub_id2 = ? AND sub_id3 = ?",
			date, domainName, sub1, sub2, sub3).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveSedoLedger persists a ledger row, inserting or fully overwriting by
// primary key. Save (rather than Updates) keeps zero-valued metrics, which
// matters when a network corrects a day down to zero.
func SaveSedoLedger(ctx context.Context, db *gorm.DB, row *domain.SedoLedger) error {
	return db.WithContext(ctx).Save(row).Error
}

// FindYandexLedger fetches the Yandex ledger row for the natural key
// (date, domain, tag_id) regardless of owner, or ErrNotFound.
func FindYandexLedger(ctx context.Context, db *gorm.DB, date time.Time, domainName, tagID string) (*domain.YandexLedger, error) {
	var row domain.YandexLedger
	err := db.WithContext(ctx).
		Where("date = ? AND domain = ? AND tag_id = ?", date, domainName, tagID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveYandexLedger persists a ledger row, inserting or fully overwriting by
// primary key.
func SaveYandexLedger(ctx context.Context, db *gorm.DB, row *domain.YandexLedger) error {
	return db.WithContext(ctx).Save(row).Error
}

// LedgerSum is one grouped aggregation bucket over a ledger table, keyed by
// (user, date, domain). Derived metrics (CTR, RPM) are intentionally absent:
// they must be recomputed from the sums, never summed themselves.
type LedgerSum struct {
	UserID       string
	Date         time.Time
	Domain       string
	GrossRevenue float64
	NetRevenue   float64
	Impressions  int64
	Clicks       int64
}

// SumLedger aggregates one network's ledger grouped by (user, date, domain),
// summing revenue, impressions, and clicks across sub-id/tag rows. userID ""
// aggregates the full table (admin-wide overview rebuild); otherwise only
// that user's rows are folded.
func SumLedger(ctx context.Context, db *gorm.DB, network, userID string) ([]LedgerSum, error) {
	table := ""
	switch network {
	case domain.NetworkSedo:
		table = domain.SedoLedger{}.TableName()
	case domain.NetworkYandex:
		table = domain.YandexLedger{}.TableName()
	default:
		return nil, gorm.ErrInvalidField
	}

	q := db.WithContext(ctx).Table(table).
		Select("user_id, date, domain, " +
			"SUM(gross_revenue) AS gross_revenue, " +
			"SUM(net_revenue) AS net_revenue, " +
			"SUM(impressions) AS impressions, " +
			"SUM(clicks) AS clicks").
		Group("user_id, date, domain").
		Order("user_id, date, domain")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var out []LedgerSum
	err := q.Scan(&out).Error
	return out, err
}

// LastLedgerWrite returns the most recent UpdatedAt across one network's
// ledger for a user, or nil when the user has no rows. Drives the
// sync-status endpoint.
func LastLedgerWrite(ctx context.Context, db *gorm.DB, network, userID string) (*time.Time, error) {
	table := ""
	switch network {
	case domain.NetworkSedo:
		table = domain.SedoLedger{}.TableName()
	case domain.NetworkYandex:
		table = domain.YandexLedger{}.TableName()
	default:
		return nil, gorm.ErrInvalidField
	}

	var count int64
	q := db.WithContext(ctx).Table(table).Where("user_id = ?", userID)
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err := q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return nil, err
	}
	return &row.UpdatedAt, nil
}
