// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. The codes are stable, lowercase snake_case strings that clients
// can branch on; generic codes mirror HTTP status semantics and
// domain-specific codes cover business failures a status alone cannot convey.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeSyncFailed       = "sync_failed"
	ErrCodeNotConfigured    = "not_configured"
	ErrCodeUnknownNetwork   = "unknown_network"
	ErrCodeReportFailed     = "report_failed"
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
