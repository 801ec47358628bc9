// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateUser inserts a new User row with the given email, role, and default
// revenue share. The ID is a randomly generated UUID and CreatedAt is UTC.
func CreateUser(ctx context.Context, db *gorm.DB, email, name, role string, revShare float64) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      role,
		RevShare:  revShare,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser fetches a user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by email, or ErrNotFound if missing.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FirstAdmin returns the oldest active admin account, or ErrNotFound when no
// admin exists. Used as the fallback owner for unassigned domains.
func FirstAdmin(ctx context.Context, db *gorm.DB) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("role = ? AND is_active = ?", "admin", true).
		Order("created_at asc").
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureFallbackUser returns the admin account that unassigned revenue is
// attributed to, creating it with the given email when no admin exists yet.
// Called once at startup.
func EnsureFallbackUser(ctx context.Context, db *gorm.DB, email string, revShare float64) (*domain.User, error) {
	if u, err := FirstAdmin(ctx, db); err == nil {
		return u, nil
	}
	return CreateUser(ctx, db, email, "Fallback Admin", "admin", revShare)
}
