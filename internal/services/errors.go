// Package services defines the business logic for revenue reconciliation,
// domain assignments, network accounts, and reporting. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrUnknownNetwork is returned when a request names a network this
	// deployment does not support.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNotConfigured indicates that a network has neither bootstrap
	// credentials nor any active stored account. It is reported as a no-op
	// ("not configured"), not as a failure needing notification.
	ErrNotConfigured = errors.New("network not configured")

	// ErrInvalidRevShare is returned when a revenue-share percentage falls
	// outside [0, 100].
	ErrInvalidRevShare = errors.New("rev share must be between 0 and 100")

	// ErrAssignmentNotFound indicates that the requested domain assignment
	// does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrAccountNotFound indicates that the requested network account does
	// not exist.
	ErrAccountNotFound = errors.New("network account not found")

	// ErrUserNotFound indicates that the referenced user does not exist or
	// is inactive.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyDomain is returned when an assignment is created without a
	// usable domain name.
	ErrEmptyDomain = errors.New("domain must not be empty")
)
