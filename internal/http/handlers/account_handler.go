// Network account HTTP handlers (admin surface).
//
// This file exposes stored ad-network credentials:
//   - POST   /api/v1/admin/accounts       (store, credentials sealed at rest)
//   - GET    /api/v1/admin/accounts       (list, credentials never returned)
//   - DELETE /api/v1/admin/accounts/{id}  (deactivate)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/networks"
	"github.com/parkstats/go-revenue-backend/internal/services"
)

// CreateAccountRequest is the JSON payload for storing a network account.
// Exactly the credential fields for the chosen network are required.
type CreateAccountRequest struct {
	Network string `json:"network" binding:"required" example:"sedo"`
	Label   string `json:"label"   example:"main partner account"`

	// Sedo credentials.
	PartnerID string `json:"partner_id,omitempty" example:"123456"`
	SignKey   string `json:"sign_key,omitempty"   example:"s3cr3t"`

	// Yandex credentials.
	Token string `json:"token,omitempty" example:"y0_AgAAAAB..."`
}

// CreateAccount godoc
// @ID          createAccount
// @Summary     Store ad-network credentials
// @Description Encrypts the credentials with the server master key and stores them as a new account. The next scheduled sync picks the account up automatically.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateAccountRequest  true  "Account payload"
//
// @Success     201  {object}  domain.NetworkAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/accounts [post]
func (h *Handlers) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	var (
		acct *domain.NetworkAccount
		err  error
	)
	label := strings.TrimSpace(req.Label)
	switch req.Network {
	case domain.NetworkSedo:
		acct, err = h.acctSvc.CreateSedo(c.Request.Context(), label, networks.SedoCredentials{
			PartnerID: strings.TrimSpace(req.PartnerID),
			SignKey:   strings.TrimSpace(req.SignKey),
		})
	case domain.NetworkYandex:
		acct, err = h.acctSvc.CreateYandex(c.Request.Context(), label, networks.YandexCredentials{
			Token: strings.TrimSpace(req.Token),
		})
	default:
		fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotConfigured):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing credential fields for network")
		case errors.Is(err, services.ErrNoMasterKey):
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "credential storage not configured")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, acct)
}

// ListAccounts godoc
// @ID          listAccounts
// @Summary     List stored accounts
// @Description Returns the stored accounts (active and inactive) without their credentials, optionally filtered to one network.
// @Tags        Accounts
// @Produce     json
//
// @Param       network  query  string  false "Filter by network"  Enums(sedo, yandex)
//
// @Success     200  {array}   domain.NetworkAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown network"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/accounts [get]
func (h *Handlers) ListAccounts(c *gin.Context) {
	items, err := h.acctSvc.List(c.Request.Context(), c.Query("network"))
	if err != nil {
		if errors.Is(err, services.ErrUnknownNetwork) {
			fail(c, http.StatusBadRequest, ErrCodeUnknownNetwork, "network must be sedo or yandex")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// DeactivateAccount godoc
// @ID          deactivateAccount
// @Summary     Deactivate a stored account
// @Description Disables an account so the sync stops using it. The row and its sealed credentials are retained.
// @Tags        Accounts
// @Produce     json
//
// @Param       id  path  string  true  "Account ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid ID"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/accounts/{id} [delete]
func (h *Handlers) DeactivateAccount(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "account id must be a UUID")
		return
	}

	err := h.acctSvc.Deactivate(c.Request.Context(), id)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrAccountNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "account not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
