package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its primary key.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a transaction by its unique
	// business reference number. Used to probe for reference collisions.
	FindTransactionByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a newest-first page of transactions
	// where the account is source or destination, using token pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByAccount(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindEntriesByTransactionID retrieves the double-entry pair of a transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)
}

// TransactionWriter defines write operations for transaction data.
// Every method is one atomic unit: the transaction row, its ledger entries and
// the balance mutations commit together or not at all.
type TransactionWriter interface {
	// SaveTransaction persists a transaction with its ledger entries and
	// applies balance deltas to the affected accounts under row locks.
	// Returns apperrors.ErrInsufficientBalance if any delta would drive a
	// locked account's balance negative, and apperrors.ErrDuplicate on a
	// reference-number collision.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error

	// SaveReversal persists a reversal transaction (with entries and balance
	// deltas) and flips the original transaction's status SUCCESS -> REVERSED
	// in the same unit. The flip is guarded on the current status being
	// SUCCESS; a lost race reports apperrors.ErrConflict.
	SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalTxnID string, updatedBy string, updatedAt time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
