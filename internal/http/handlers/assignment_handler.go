// Domain assignment HTTP handlers (admin surface).
//
// This file exposes the ownership registry:
//   - PUT    /api/v1/admin/assignments  (create or re-point)
//   - DELETE /api/v1/admin/assignments  (deactivate)
//   - GET    /api/v1/admin/assignments  (list, paginated)
//
// Re-assigning a domain takes effect on the next sync: the engine re-points
// the existing ledger rows rather than duplicating them.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/services"
	"github.com/parkstats/go-revenue-backend/internal/utils"
)

// UpsertAssignmentRequest is the JSON payload for creating or re-pointing an
// assignment.
type UpsertAssignmentRequest struct {
	// Domain is normalized server-side (lowercased, punycoded).
	Domain string `json:"domain"  binding:"required" example:"example.com"`
	// Network the assignment applies to.
	Network string `json:"network" binding:"required" example:"sedo"`
	// UserID of the owning account.
	UserID string `json:"user_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// RevShare percentage in [0,100] applied at reconciliation time.
	RevShare float64 `json:"rev_share" example:"80"`
}

// RemoveAssignmentRequest is the JSON payload for deactivating an assignment.
type RemoveAssignmentRequest struct {
	Domain  string `json:"domain"  binding:"required" example:"example.com"`
	Network string `json:"network" binding:"required" example:"sedo"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListAssignmentsResponse wraps one registry page and its pagination info.
type ListAssignmentsResponse struct {
	Assignments []domain.DomainAssignment `json:"assignments"`
	Pagination  Pagination                `json:"pagination"`
}

// clampPagination parses and bounds the page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// UpsertAssignment godoc
// @ID          upsertAssignment
// @Summary     Create or re-point a domain assignment
// @Description Assigns a (domain, network) pair to a user at a revenue share. Assigning to a new owner deactivates the previous owner's entry; ledger rows are re-pointed on the next sync.
// @Tags        Assignments
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.UpsertAssignmentRequest  true  "Assignment payload"
//
// @Success     200  {object}  domain.DomainAssignment
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/assignments [put]
func (h *Handlers) UpsertAssignment(c *gin.Context) {
	var req UpsertAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.assignSvc.Upsert(c.Request.Context(), req.Domain, req.Network, req.UserID, req.RevShare)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownNetwork):
			fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
		case errors.Is(err, services.ErrEmptyDomain):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "domain must not be empty")
		case errors.Is(err, services.ErrInvalidRevShare):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rev_share must be between 0 and 100")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, a)
}

// RemoveAssignment godoc
// @ID          removeAssignment
// @Summary     Deactivate a domain assignment
// @Description Clears the active flag of the (domain, network) assignment. Future revenue for the domain falls back to the fallback user.
// @Tags        Assignments
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RemoveAssignmentRequest  true  "Assignment key"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     404  {object}  handlers.ErrorResponse  "Assignment not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/assignments [delete]
func (h *Handlers) RemoveAssignment(c *gin.Context) {
	var req RemoveAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.assignSvc.Remove(c.Request.Context(), req.Domain, req.Network)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrUnknownNetwork):
		fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
	case errors.Is(err, services.ErrEmptyDomain):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "domain must not be empty")
	case errors.Is(err, services.ErrAssignmentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "assignment not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// ListAssignments godoc
// @ID          listAssignments
// @Summary     List domain assignments (paginated)
// @Description Returns one page of the ownership registry, optionally filtered to a network.
// @Tags        Assignments
// @Produce     json
//
// @Param       network    query  string  false "Filter by network"  Enums(sedo, yandex)
// @Param       page       query  int     false "Page number"        minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"     minimum(1) maximum(200) default(50)
//
// @Success     200  {object}  handlers.ListAssignmentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown network"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/assignments [get]
func (h *Handlers) ListAssignments(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.assignSvc.List(c.Request.Context(), c.Query("network"), page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrUnknownNetwork) {
			fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListAssignmentsResponse{
		Assignments: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
