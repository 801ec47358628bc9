// Sync HTTP handlers.
//
// This file exposes the endpoints that trigger revenue reconciliation:
//   - GET  /api/cron/sync-sedo    (scheduler, all accounts, all users)
//   - GET  /api/cron/sync-yandex  (scheduler, all accounts, all users)
//   - POST /api/v1/sync/{network} (manual, scoped to the calling user)
//   - GET  /api/v1/sync/status    (per-user freshness snapshot)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. A sync run that saved
// anything at all answers 200 with per-account counters even when individual
// records failed; only a run that could not start at all is an error.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/http/middleware"
	"github.com/parkstats/go-revenue-backend/internal/networks"
	"github.com/parkstats/go-revenue-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// SyncRunner runs the fetch/reconcile/fold pipeline for one network.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SyncRunner interface {
	RunNetworkSync(ctx context.Context, network string, opts services.SaveOptions) (*services.BatchSummary, error)
}

// Reporter serves the read side of the dashboard.
type Reporter interface {
	DashboardSummary(ctx context.Context, userID string, from, to time.Time) (*services.Summary, error)
	DomainBreakdown(ctx context.Context, userID string, from, to time.Time, limit int) ([]services.DomainRow, error)
	NetworkComparison(ctx context.Context, userID string, from, to time.Time) ([]services.NetworkRow, error)
	Status(ctx context.Context, userID string) (*services.SyncStatus, error)
}

// AssignmentManager manages the domain ownership registry.
type AssignmentManager interface {
	Upsert(ctx context.Context, domainName, network, userID string, revShare float64) (*domain.DomainAssignment, error)
	Remove(ctx context.Context, domainName, network string) error
	List(ctx context.Context, network string, page, pageSize int) ([]domain.DomainAssignment, int64, error)
}

// AccountManager manages stored ad-network accounts.
type AccountManager interface {
	CreateSedo(ctx context.Context, label string, creds networks.SedoCredentials) (*domain.NetworkAccount, error)
	CreateYandex(ctx context.Context, label string, creds networks.YandexCredentials) (*domain.NetworkAccount, error)
	List(ctx context.Context, network string) ([]domain.NetworkAccount, error)
	Deactivate(ctx context.Context, id string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for syncs, reports, assignments, and
// accounts. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	syncSvc   SyncRunner
	reportSvc Reporter
	assignSvc AssignmentManager
	acctSvc   AccountManager
}

// New constructs a Handlers instance bound to the given services.
func New(syncSvc SyncRunner, reportSvc Reporter, assignSvc AssignmentManager, acctSvc AccountManager) *Handlers {
	return &Handlers{syncSvc: syncSvc, reportSvc: reportSvc, assignSvc: assignSvc, acctSvc: acctSvc}
}

// userID extracts the authenticated user id from Gin context (set by
// upstream middleware). If absent, it falls back to the "X-User-ID" header
// (tests use it), and finally to "demo-user".
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// SyncResponse is the body returned by the cron and manual sync endpoints.
type SyncResponse struct {
	Success bool                   `json:"success"`
	Summary *services.BatchSummary `json:"summary"`
}

//
// Handlers
//

// CronSyncSedo godoc
// @ID          cronSyncSedo
// @Summary     Run the scheduled Sedo sync
// @Description Fetches the lookback window from every active Sedo account, reconciles the ledger, and rebuilds the overview. Requires the cron Bearer secret outside development.
// @Tags        Cron
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer <cron secret>"
//
// @Success     200  {object}  handlers.SyncResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid secret"
// @Failure     503  {object}  handlers.ErrorResponse  "Network not configured"
// @Failure     500  {object}  handlers.ErrorResponse  "Sync could not start"
// @Router      /cron/sync-sedo [get]
func (h *Handlers) CronSyncSedo(c *gin.Context) {
	h.runCronSync(c, domain.NetworkSedo)
}

// CronSyncYandex godoc
// @ID          cronSyncYandex
// @Summary     Run the scheduled Yandex sync
// @Description Fetches the lookback window from every active Yandex account, reconciles the ledger, and rebuilds the overview. Requires the cron Bearer secret outside development.
// @Tags        Cron
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer <cron secret>"
//
// @Success     200  {object}  handlers.SyncResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid secret"
// @Failure     503  {object}  handlers.ErrorResponse  "Network not configured"
// @Failure     500  {object}  handlers.ErrorResponse  "Sync could not start"
// @Router      /cron/sync-yandex [get]
func (h *Handlers) CronSyncYandex(c *gin.Context) {
	h.runCronSync(c, domain.NetworkYandex)
}

func (h *Handlers) runCronSync(c *gin.Context, network string) {
	sum, err := h.syncSvc.RunNetworkSync(c.Request.Context(), network, services.SaveOptions{})
	if err != nil {
		writeSyncError(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().
		Str("network", network).
		Int("saved", sum.RecordsSaved).
		Int("updated", sum.RecordsUpdated).
		Int("errors", sum.ErrorCount).
		Msg("cron sync completed")
	ok(c, http.StatusOK, SyncResponse{Success: sum.ErrorCount == 0, Summary: sum})
}

// ManualSync godoc
// @ID          manualSync
// @Summary     Trigger a sync for the calling user
// @Description Runs a sync for one network scoped to the caller: only records for domains assigned to the caller are written. Unassigned records are skipped, never re-attributed.
// @Tags        Sync
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       network    path    string  true  "Network"                Enums(sedo, yandex)
//
// @Success     200  {object}  handlers.SyncResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown network"
// @Failure     503  {object}  handlers.ErrorResponse  "Network not configured"
// @Failure     500  {object}  handlers.ErrorResponse  "Sync could not start"
// @Router      /sync/{network} [post]
func (h *Handlers) ManualSync(c *gin.Context) {
	network := c.Param("network")
	if !domain.KnownNetwork(network) {
		fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
		return
	}

	opts := services.SaveOptions{FilterAssigned: true, OwnerID: userID(c)}
	sum, err := h.syncSvc.RunNetworkSync(c.Request.Context(), network, opts)
	if err != nil {
		writeSyncError(c, err)
		return
	}
	ok(c, http.StatusOK, SyncResponse{Success: sum.ErrorCount == 0, Summary: sum})
}

// SyncStatus godoc
// @ID          syncStatus
// @Summary     Sync freshness for the calling user
// @Description Reports, per network, when the caller's ledger last received data. Cached briefly server-side; safe to poll.
// @Tags        Sync
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  services.SyncStatus
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sync/status [get]
func (h *Handlers) SyncStatus(c *gin.Context) {
	st, err := h.reportSvc.Status(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, st)
}

// writeSyncError maps sync start failures to HTTP responses. Per-record
// failures never reach here; they are reported inside the 200 summary.
func writeSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownNetwork):
		fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
	case errors.Is(err, services.ErrNotConfigured):
		fail(c, http.StatusServiceUnavailable, ErrCodeNotConfigured, "network has no configured accounts")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeSyncFailed, err.Error())
	}
}
