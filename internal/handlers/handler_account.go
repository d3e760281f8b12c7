package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
	"github.com/smartstock/smartstock_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getBalance)
		accounts.DELETE("/:accountID", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a customer or supplier account
// @Description Creates a new account in the company directory
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the company's active accounts, optionally filtered by type
// @Tags accounts
// @Produce  json
// @Param   type query string false "Account type" Enums(CUSTOMER, SUPPLIER)
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var accountType *domain.AccountType
	if typeStr := c.Query("type"); typeStr != "" {
		t := domain.AccountType(typeStr)
		accountType = &t
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), companyID, accountType)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), companyID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get an account's outstanding balance
// @Description Recomputes the balance from the ledger on every call
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	balance, err := h.accountService.GetOutstandingBalance(c.Request.Context(), companyID, accountID)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, OutstandingBalance: balance})
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that no ledger entry references
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account referenced by ledger entries"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), companyID, c.Param("accountID")); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
