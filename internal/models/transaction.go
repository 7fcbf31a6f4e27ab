package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the storage layer.
type TransactionType string

// TransactionStatus mirrors domain.TransactionStatus at the storage layer.
type TransactionStatus string

// Transaction represents one row in the append-only transactions table.
type Transaction struct {
	TransactionID      string            `db:"transaction_id"`
	TransactionType    TransactionType   `db:"transaction_type"`
	Amount             decimal.Decimal   `db:"amount"`
	Status             TransactionStatus `db:"status"`
	ReferenceNumber    string            `db:"reference_number"`
	SourceAccount      *string           `db:"source_account"`      // Nullable
	DestinationAccount *string           `db:"destination_account"` // Nullable
	Description        string            `db:"description"`
	OriginalTxnID      *string           `db:"original_transaction_id"`
	ReversingTxnID     *string           `db:"reversing_transaction_id"`
	AuditFields
}

// LedgerEntry represents one side of the double-entry pair for a transaction.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	CoaCode       string          `db:"coa_code"`
	Side          string          `db:"side"` // DEBIT or CREDIT
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
}
