package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// DepositRequest defines a cash deposit into one account.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// WithdrawRequest defines a cash withdrawal from one account.
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// TransferRequest defines a fund transfer between two accounts.
type TransferRequest struct {
	SourceAccount      string          `json:"sourceAccount" binding:"required"`
	DestinationAccount string          `json:"destinationAccount" binding:"required"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Description        string          `json:"description"`
}

// ListTransactionsParams holds pagination parameters for transaction history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	TransactionType    string          `json:"transactionType"`
	Amount             decimal.Decimal `json:"amount"`
	Status             string          `json:"status"`
	ReferenceNumber    string          `json:"referenceNumber"`
	SourceAccount      string          `json:"sourceAccount,omitempty"`
	DestinationAccount string          `json:"destinationAccount,omitempty"`
	Description        string          `json:"description"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// LedgerEntryResponse defines one side of a transaction's double-entry pair.
type LedgerEntryResponse struct {
	EntryID string          `json:"entryID"`
	CoaCode string          `json:"coaCode"`
	Side    string          `json:"side"`
	Amount  decimal.Decimal `json:"amount"`
}

// TransactionHistoryResponse is a newest-first page of account transactions.
type TransactionHistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// GetTransactionResponse combines a transaction with its ledger entries.
type GetTransactionResponse struct {
	Transaction TransactionResponse   `json:"transaction"`
	Entries     []LedgerEntryResponse `json:"entries"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		TransactionType:    string(txn.TransactionType),
		Amount:             txn.Amount,
		Status:             string(txn.Status),
		ReferenceNumber:    txn.ReferenceNumber,
		SourceAccount:      txn.SourceAccount,
		DestinationAccount: txn.DestinationAccount,
		Description:        txn.Description,
		CreatedAt:          txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToLedgerEntryResponses converts domain ledger entries to DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LedgerEntryResponse{
			EntryID: e.EntryID,
			CoaCode: e.CoaCode,
			Side:    string(e.Side),
			Amount:  e.Amount,
		}
	}
	return responses
}
