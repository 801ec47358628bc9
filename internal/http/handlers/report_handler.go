// Reporting HTTP handlers.
//
// This file exposes the read side of the dashboard:
//   - GET /api/v1/reports/summary   (headline totals for a period)
//   - GET /api/v1/reports/domains   (per-domain breakdown, top N by net)
//   - GET /api/v1/reports/networks  (per-network comparison)
//
// All endpoints are scoped to the calling user and accept an optional
// from/to period (yyyy-mm-dd, inclusive); the default period is the last
// 30 days.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/utils"
)

// reportPeriod parses the from/to query params, defaulting to the last 30
// days ending today (UTC). A from after to is swapped rather than rejected.
func reportPeriod(c *gin.Context) (from, to time.Time) {
	today := domain.NormalizeDay(time.Now())
	to = utils.ParseDay(c.Query("to"), today)
	from = utils.ParseDay(c.Query("from"), to.AddDate(0, 0, -29))
	if from.After(to) {
		from, to = to, from
	}
	return from, to
}

// GetSummary godoc
// @ID          getReportSummary
// @Summary     Dashboard headline totals
// @Description Returns the caller's summed revenue, impressions, and clicks over the period, with CTR and RPM derived from the totals.
// @Tags        Reports
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"       example(user123)
// @Param       from       query   string  false "Period start (yyyy-mm-dd)"   example(2026-08-01)
// @Param       to         query   string  false "Period end (yyyy-mm-dd)"     example(2026-08-24)
//
// @Success     200  {object}  services.Summary
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/summary [get]
func (h *Handlers) GetSummary(c *gin.Context) {
	from, to := reportPeriod(c)
	sum, err := h.reportSvc.DashboardSummary(c.Request.Context(), userID(c), from, to)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeReportFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}

// GetDomains godoc
// @ID          getReportDomains
// @Summary     Per-domain breakdown
// @Description Returns the caller's top domains by net revenue over the period.
// @Tags        Reports
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"       example(user123)
// @Param       from       query   string  false "Period start (yyyy-mm-dd)"   example(2026-08-01)
// @Param       to         query   string  false "Period end (yyyy-mm-dd)"     example(2026-08-24)
// @Param       limit      query   int     false "Max rows"                    minimum(1) maximum(200) default(50)
//
// @Success     200  {array}   services.DomainRow
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/domains [get]
func (h *Handlers) GetDomains(c *gin.Context) {
	from, to := reportPeriod(c)
	limit := utils.AtoiDefault(c.Query("limit"), 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := h.reportSvc.DomainBreakdown(c.Request.Context(), userID(c), from, to, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeReportFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// GetNetworks godoc
// @ID          getReportNetworks
// @Summary     Per-network comparison
// @Description Returns the caller's totals over the period split by network, for the side-by-side panel.
// @Tags        Reports
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"       example(user123)
// @Param       from       query   string  false "Period start (yyyy-mm-dd)"   example(2026-08-01)
// @Param       to         query   string  false "Period end (yyyy-mm-dd)"     example(2026-08-24)
//
// @Success     200  {array}   services.NetworkRow
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/networks [get]
func (h *Handlers) GetNetworks(c *gin.Context) {
	from, to := reportPeriod(c)
	rows, err := h.reportSvc.NetworkComparison(c.Request.Context(), userID(c), from, to)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeReportFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}
