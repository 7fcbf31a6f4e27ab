package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barengs/smpt-sub000/internal/core/domain"
	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/dto"
	"github.com/barengs/smpt-sub000/internal/middleware"
)

// accountHandler handles HTTP requests related to savings accounts.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ls}
}

// registerAccountRoutes registers routes related to savings accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", middleware.RequireActor(), h.openAccount)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.GET("/:accountNumber/transactions", h.getHistory)
		accounts.PATCH("/:accountNumber/status", middleware.RequireActor(), h.updateAccountStatus)
	}

	owners := rg.Group("/owners")
	{
		owners.GET("/:ownerReference/accounts", h.listAccountsByOwner)
	}
}

// listAccountsByOwner godoc
// @Summary List an owner's accounts
// @Description Retrieves all savings accounts held by one owner reference, oldest first
// @Tags accounts
// @Produce  json
// @Param   ownerReference path string true "Owner reference"
// @Success 200 {array} dto.AccountResponse
// @Router /owners/{ownerReference}/accounts [get]
func (h *accountHandler) listAccountsByOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerReference := c.Param("ownerReference")

	accounts, err := h.ledgerService.GetAccountsByOwner(c.Request.Context(), ownerReference)
	if err != nil {
		respondWithServiceError(c, logger, err, "list accounts by owner")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// openAccount godoc
// @Summary Open a new savings account
// @Description Provisions a new account with zero balance in INACTIVE status; the first deposit activates it
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenAccountRequest true "Account owner"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to open account"
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	account, err := h.ledgerService.OpenAccount(c.Request.Context(), req.OwnerReference, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "open account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account with its current balance and status
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	account, err := h.ledgerService.GetAccount(c.Request.Context(), accountNumber)
	if err != nil {
		respondWithServiceError(c, logger, err, "get account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getHistory godoc
// @Summary List an account's transactions
// @Description Retrieves a newest-first page of transactions where the account is source or destination
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Opaque pagination token from a previous page"
// @Success 200 {object} dto.TransactionHistoryResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber}/transactions [get]
func (h *accountHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	history, err := h.ledgerService.GetHistory(c.Request.Context(), accountNumber, params)
	if err != nil {
		respondWithServiceError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, history)
}

// updateAccountStatus godoc
// @Summary Update an account's status
// @Description Applies a status transition; closing requires a zero balance and closed accounts stay closed
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   status body dto.UpdateAccountStatusRequest true "Target status"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Transition not allowed in current state"
// @Router /accounts/{accountNumber}/status [patch]
func (h *accountHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	account, err := h.ledgerService.UpdateAccountStatus(c.Request.Context(), accountNumber, domain.AccountStatus(req.Status), actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "update account status")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
