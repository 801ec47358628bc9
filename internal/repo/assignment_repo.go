// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// DomainAssignment model (the domain ownership registry).
//
// The registry is read in bulk by the reconciliation engine (one query per
// batch instead of one per record) and written by admin actions and by the
// auto-creation path for never-before-seen domains.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/domain"
)

// ListActiveAssignments returns every active assignment for one network in a
// single bulk read, ordered by domain for deterministic iteration.
func ListActiveAssignments(ctx context.Context, db *gorm.DB, network string) ([]domain.DomainAssignment, error) {
	var out []domain.DomainAssignment
	err := db.WithContext(ctx).
		Where("network = ? AND is_active = ?", network, true).
		Order("domain asc").
		Find(&out).Error
	return out, err
}

// FindActiveAssignment returns the active assignment for (domainName, network)
// regardless of owner, or ErrNotFound. When older deactivated rows exist for
// the same pair, only the active one is considered.
func FindActiveAssignment(ctx context.Context, db *gorm.DB, domainName, network string) (*domain.DomainAssignment, error) {
	var a domain.DomainAssignment
	err := db.WithContext(ctx).
		Where("domain = ? AND network = ? AND is_active = ?", domainName, network, true).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAssignmentForUser returns the assignment row for the full
// (domain, network, user) unique key, active or not, or ErrNotFound.
func FindAssignmentForUser(ctx context.Context, db *gorm.DB, domainName, network, userID string) (*domain.DomainAssignment, error) {
	var a domain.DomainAssignment
	err := db.WithContext(ctx).
		Where("domain = ? AND network = ? AND user_id = ?", domainName, network, userID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAssignment inserts a new assignment row. The caller is responsible
// for domain-name normalization and for deactivating any previous owner's
// row (see services.AssignmentService.Upsert).
func CreateAssignment(ctx context.Context, db *gorm.DB, domainName, network, userID string, revShare float64, autoAdded bool) (*domain.DomainAssignment, error) {
	a := &domain.DomainAssignment{
		ID:        uuid.NewString(),
		Domain:    domainName,
		Network:   network,
		UserID:    userID,
		RevShare:  revShare,
		IsActive:  true,
		AutoAdded: autoAdded,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAssignment overwrites the mutable fields (rev_share, is_active) of an
// existing row. Returns ErrNotFound when no row was affected.
func UpdateAssignment(ctx context.Context, db *gorm.DB, id string, revShare float64, isActive bool) error {
	res := db.WithContext(ctx).
		Model(&domain.DomainAssignment{}).
		Where("id = ?", id).
		Updates(map[string]any{"rev_share": revShare, "is_active": isActive})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateAssignment soft-removes an assignment by clearing its active
// flag. The row is retained so historical ledger attribution stays auditable.
func DeactivateAssignment(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.DomainAssignment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAssignments returns the total number of assignment rows, optionally
// scoped to one network ("" means all networks). Used for pagination.
func CountAssignments(ctx context.Context, db *gorm.DB, network string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.DomainAssignment{})
	if network != "" {
		q = q.Where("network = ?", network)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListAssignmentsPage returns a page of assignment rows ordered by domain,
// optionally scoped to one network.
func ListAssignmentsPage(ctx context.Context, db *gorm.DB, network string, offset, limit int) ([]domain.DomainAssignment, error) {
	q := db.WithContext(ctx).Model(&domain.DomainAssignment{})
	if network != "" {
		q = q.Where("network = ?", network)
	}
	var out []domain.DomainAssignment
	err := q.Order("domain asc, created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListUserDomains returns the normalized domain names actively assigned to
// userID on network. Used by manual syncs that filter to owned domains.
func ListUserDomains(ctx context.Context, db *gorm.DB, network, userID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.DomainAssignment{}).
		Where("network = ? AND user_id = ? AND is_active = ?", network, userID, true).
		Order("domain asc").
		Pluck("domain", &out).Error
	return out, err
}
