// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// NetworkAccount model (stored, encrypted ad-network credentials).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/domain"
)

// ListActiveAccounts returns the active accounts for one network in creation
// order. The daily sync iterates this list; failure of one account does not
// prevent the others from being attempted.
func ListActiveAccounts(ctx context.Context, db *gorm.DB, network string) ([]domain.NetworkAccount, error) {
	var out []domain.NetworkAccount
	err := db.WithContext(ctx).
		Where("network = ? AND is_active = ?", network, true).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// ListAccounts returns all accounts (active and inactive) for the admin UI,
// optionally scoped to one network ("" means all).
func ListAccounts(ctx context.Context, db *gorm.DB, network string) ([]domain.NetworkAccount, error) {
	q := db.WithContext(ctx).Model(&domain.NetworkAccount{})
	if network != "" {
		q = q.Where("network = ?", network)
	}
	var out []domain.NetworkAccount
	err := q.Order("network asc, created_at asc").Find(&out).Error
	return out, err
}

// CreateAccount inserts a new account row with an already-encrypted
// credential blob.
func CreateAccount(ctx context.Context, db *gorm.DB, network, label string, credentials []byte) (*domain.NetworkAccount, error) {
	a := &domain.NetworkAccount{
		ID:          uuid.NewString(),
		Network:     network,
		Label:       label,
		Credentials: credentials,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAccount fetches an account by ID, or ErrNotFound.
func GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.NetworkAccount, error) {
	var a domain.NetworkAccount
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// DeactivateAccount disables an account without deleting its row.
// Returns ErrNotFound when the account is missing or already inactive.
func DeactivateAccount(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.NetworkAccount{}).
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

// TouchAccountSync records a successful fetch time for an account.
func TouchAccountSync(ctx context.Context, db *gorm.DB, id string, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.NetworkAccount{}).
		Where("id = ?", id).
		Update("last_sync_at", at).Error
}
