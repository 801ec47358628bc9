// Package domain defines the persistence models for users, domain
// assignments, network accounts, per-network revenue ledgers, and the
// cross-network overview. These types are mapped with GORM and form the
// core data layer of the revenue dashboard.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents a dashboard account. Publishers own domains and see only
// their own revenue; admins manage assignments, accounts, and full syncs.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: login identity, unique.
//   - Role: "admin" or "publisher" (enforced by DB constraint).
//   - RevShare: default revenue-share percentage applied to domains
//     auto-assigned to this user.
//   - IsActive: inactive users are excluded from ownership resolution.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type User struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null;default:''"`
	Role      string         `json:"role"       gorm:"type:varchar(16);not null;default:'publisher';check:role IN ('admin','publisher')"`
	RevShare  float64        `json:"rev_share"  gorm:"not null;default:80"`
	IsActive  bool           `json:"is_active"  gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// DomainAssignment binds a (domain, network) pair to an owning user with a
// revenue-share percentage. At most one *active* assignment per
// (domain, network) is expected; the unique constraint is on
// (domain, network, user_id), so re-assigning a domain to a different user
// creates a second row while the old owner's row is deactivated.
//
// Assignments are never hard-deleted during normal operation: ownership is
// removed by setting IsActive to false.
type DomainAssignment struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Domain    string         `json:"domain"     gorm:"type:varchar(255);not null;index;uniqueIndex:ux_assign_domain_network_user,priority:1"`
	Network   string         `json:"network"    gorm:"type:varchar(16);not null;uniqueIndex:ux_assign_domain_network_user,priority:2;check:network IN ('sedo','yandex')"`
	UserID    string         `json:"user_id"    gorm:"type:char(36);not null;index;uniqueIndex:ux_assign_domain_network_user,priority:3"`
	RevShare  float64        `json:"rev_share"  gorm:"not null;default:80"`
	IsActive  bool           `json:"is_active"  gorm:"not null;default:true"`
	AutoAdded bool           `json:"auto_added" gorm:"not null;default:false"` // created by sync for a never-before-seen domain
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`

	// User is the owning account.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for DomainAssignment.
func (DomainAssignment) TableName() string { return "domain_assignments" }

// NetworkAccount holds one set of ad-network API credentials. A network may
// have several accounts; the daily sync loops over the active ones.
// Credentials are stored as an authenticated-encryption blob (see
// internal/secrets) and are never exposed through the API.
type NetworkAccount struct {
	ID          string         `json:"id"        gorm:"type:char(36);primaryKey"`
	Network     string         `json:"network"   gorm:"type:varchar(16);not null;index;check:network IN ('sedo','yandex')"`
	Label       string         `json:"label"     gorm:"type:varchar(255);not null;default:''"`
	Credentials []byte         `json:"-"         gorm:"type:blob;not null"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	LastSyncAt  *time.Time     `json:"last_sync_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"         gorm:"index"`
}

// TableName returns the database table name for NetworkAccount.
func (NetworkAccount) TableName() string { return "network_accounts" }

// SedoLedger is one reconciled Sedo revenue row. The natural key is
// (date, domain, sub1, sub2, sub3); the owning user on that row may change
// between syncs when the domain is re-assigned, but the row itself is never
// duplicated. RevShare is a snapshot of the percentage applied at
// reconciliation time.
//
// Invariant: GrossRevenue >= NetRevenue >= 0. CTR and RPM are derived and
// recomputed on every write.
type SedoLedger struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Date         time.Time `json:"date"          gorm:"not null;index:idx_sedo_key,priority:1"`
	Domain       string    `json:"domain"        gorm:"type:varchar(255);not null;index:idx_sedo_key,priority:2"`
	SubID1       string    `json:"sub_id1"       gorm:"type:varchar(64);not null;default:'';index:idx_sedo_key,priority:3"`
	SubID2       string    `json:"sub_id2"       gorm:"type:varchar(64);not null;default:''"`
	SubID3       string    `json:"sub_id3"       gorm:"type:varchar(64);not null;default:''"`
	UserID       string    `json:"user_id"       gorm:"type:char(36);not null;index"`
	GrossRevenue float64   `json:"gross_revenue" gorm:"not null;default:0"`
	NetRevenue   float64   `json:"net_revenue"   gorm:"not null;default:0"`
	RevShare     float64   `json:"rev_share"     gorm:"not null;default:0"`
	Impressions  int64     `json:"impressions"   gorm:"not null;default:0"`
	Clicks       int64     `json:"clicks"        gorm:"not null;default:0"`
	CTR          float64   `json:"ctr"           gorm:"not null;default:0"`
	RPM          float64   `json:"rpm"           gorm:"not null;default:0"`
	Status       string    `json:"status"        gorm:"type:varchar(16);not null;default:'Estimated';check:status IN ('Estimated','Final')"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for SedoLedger.
func (SedoLedger) TableName() string { return "sedo_ledger" }

// YandexLedger is one reconciled Yandex Advertising Network revenue row.
// The natural key is (date, domain, tag_id); ownership re-pointing and the
// revenue invariants match SedoLedger.
type YandexLedger struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Date         time.Time `json:"date"          gorm:"not null;index:idx_yandex_key,priority:1"`
	Domain       string    `json:"domain"        gorm:"type:varchar(255);not null;index:idx_yandex_key,priority:2"`
	TagID        string    `json:"tag_id"        gorm:"type:varchar(64);not null;default:'';index:idx_yandex_key,priority:3"`
	TagName      string    `json:"tag_name"      gorm:"type:varchar(255);not null;default:''"`
	UserID       string    `json:"user_id"       gorm:"type:char(36);not null;index"`
	GrossRevenue float64   `json:"gross_revenue" gorm:"not null;default:0"`
	NetRevenue   float64   `json:"net_revenue"   gorm:"not null;default:0"`
	RevShare     float64   `json:"rev_share"     gorm:"not null;default:0"`
	Impressions  int64     `json:"impressions"   gorm:"not null;default:0"`
	Clicks       int64     `json:"clicks"        gorm:"not null;default:0"`
	CTR          float64   `json:"ctr"           gorm:"not null;default:0"`
	RPM          float64   `json:"rpm"           gorm:"not null;default:0"`
	Status       string    `json:"status"        gorm:"type:varchar(16);not null;default:'Estimated';check:status IN ('Estimated','Final')"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for YandexLedger.
func (YandexLedger) TableName() string { return "yandex_ledger" }

// RevenueOverview is the cross-network aggregate: one row per
// (date, network, domain, user), produced by summing the ledger rows sharing
// that key. It is a materialized view over the ledgers, rebuilt on every
// sync, never a source of truth.
type RevenueOverview struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Date         time.Time `json:"date"          gorm:"not null;uniqueIndex:ux_overview_key,priority:1"`
	Network      string    `json:"network"       gorm:"type:varchar(16);not null;uniqueIndex:ux_overview_key,priority:2"`
	Domain       string    `json:"domain"        gorm:"type:varchar(255);not null;uniqueIndex:ux_overview_key,priority:3"`
	UserID       string    `json:"user_id"       gorm:"type:char(36);not null;index;uniqueIndex:ux_overview_key,priority:4"`
	GrossRevenue float64   `json:"gross_revenue" gorm:"not null;default:0"`
	NetRevenue   float64   `json:"net_revenue"   gorm:"not null;default:0"`
	Impressions  int64     `json:"impressions"   gorm:"not null;default:0"`
	Clicks       int64     `json:"clicks"        gorm:"not null;default:0"`
	CTR          float64   `json:"ctr"           gorm:"not null;default:0"`
	RPM          float64   `json:"rpm"           gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for RevenueOverview.
func (RevenueOverview) TableName() string { return "revenue_overview" }
