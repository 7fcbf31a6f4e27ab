package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of monetary movement a transaction records.
type TransactionType string

const (
	CashDeposit            TransactionType = "CASH_DEPOSIT"
	CashWithdrawal         TransactionType = "CASH_WITHDRAWAL"
	FundTransfer           TransactionType = "FUND_TRANSFER"
	CashDepositReversal    TransactionType = "CASH_DEPOSIT_REVERSAL"
	CashWithdrawalReversal TransactionType = "CASH_WITHDRAWAL_REVERSAL"
	FundTransferReversal   TransactionType = "FUND_TRANSFER_REVERSAL"
)

// IsReversal reports whether t is itself a corrective transaction.
// Reversals can never be reversed again.
func (t TransactionType) IsReversal() bool {
	switch t {
	case CashDepositReversal, CashWithdrawalReversal, FundTransferReversal:
		return true
	}
	return false
}

// ReversalType returns the corrective counterpart of an original transaction type.
func (t TransactionType) ReversalType() TransactionType {
	switch t {
	case CashDeposit:
		return CashDepositReversal
	case CashWithdrawal:
		return CashWithdrawalReversal
	case FundTransfer:
		return FundTransferReversal
	}
	return t
}

// TransactionStatus indicates the processing state of a transaction.
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "PENDING"
	TransactionSuccess  TransactionStatus = "SUCCESS"
	TransactionFailed   TransactionStatus = "FAILED"
	TransactionReversed TransactionStatus = "REVERSED"
)

// Transaction is an immutable record of one monetary movement. The only
// permitted change after creation is the single SUCCESS -> REVERSED flip.
type Transaction struct {
	TransactionID      string            `json:"transactionID"` // Primary key (UUID)
	TransactionType    TransactionType   `json:"transactionType"`
	Amount             decimal.Decimal   `json:"amount"` // Positive, scale 2
	Status             TransactionStatus `json:"status"`
	ReferenceNumber    string            `json:"referenceNumber"`               // Unique business key
	SourceAccount      string            `json:"sourceAccount,omitempty"`       // Required for withdrawal/transfer
	DestinationAccount string            `json:"destinationAccount,omitempty"`  // Required for deposit/transfer
	Description        string            `json:"description"`                   // Nullable
	OriginalTxnID      *string           `json:"originalTransactionID,omitempty"`  // Set on reversal transactions
	ReversingTxnID     *string           `json:"reversingTransactionID,omitempty"` // Set on reversed originals
	AuditFields
}

// EntrySide indicates whether a ledger entry debits or credits its COA code.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// LedgerEntry is one side of the double-entry pair recorded for a transaction.
// Each transaction owns exactly one DEBIT and one CREDIT entry of equal amount.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"` // Primary key (UUID)
	TransactionID string          `json:"transactionID"`
	CoaCode       string          `json:"coaCode"` // Chart-of-accounts code
	Side          EntrySide       `json:"side"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}
