package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/dto"
	"github.com/barengs/smpt-sub000/internal/middleware"
)

// ledgerHandler handles HTTP requests for monetary movements.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to transactions.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/deposit", middleware.RequireActor(), h.deposit)
		transactions.POST("/withdraw", middleware.RequireActor(), h.withdraw)
		transactions.POST("/transfer", middleware.RequireActor(), h.transfer)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.POST("/:transactionID/reverse", middleware.RequireActor(), h.reverse)
	}
}

// deposit godoc
// @Summary Record a cash deposit
// @Description Credits an account and records a SUCCESS CASH_DEPOSIT with its double-entry pair
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format or amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not usable in its current status"
// @Router /transactions/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	txn, err := h.ledgerService.Deposit(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "record deposit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Record a cash withdrawal
// @Description Debits an account and records a SUCCESS CASH_WITHDRAWAL; fails if funds are insufficient
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format or amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Router /transactions/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	txn, err := h.ledgerService.Withdraw(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "record withdrawal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// transfer godoc
// @Summary Record a fund transfer
// @Description Moves funds between two accounts as one zero-sum movement
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format, amount, or same-account transfer"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Router /transactions/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	txn, err := h.ledgerService.Transfer(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "record transfer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction with its debit/credit ledger entry pair
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.GetTransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, entries, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithServiceError(c, logger, err, "get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.GetTransactionResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Entries:     dto.ToLedgerEntryResponses(entries),
	})
}

// reverse godoc
// @Summary Reverse a transaction
// @Description Creates a corrective transaction inverting the original and flips the original to REVERSED; a transaction can be reversed at most once
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID to reverse"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already reversed or not reversible"
// @Failure 422 {object} map[string]string "Reversal would drive a balance negative"
// @Router /transactions/{transactionID}/reverse [post]
func (h *ledgerHandler) reverse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	actorID, _ := middleware.GetActorFromContext(c)
	reversal, err := h.ledgerService.Reverse(c.Request.Context(), transactionID, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "reverse transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(reversal))
}
