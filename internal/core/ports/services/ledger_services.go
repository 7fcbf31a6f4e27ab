package services

import (
	"context"

	"github.com/barengs/smpt-sub000/internal/core/domain"
	"github.com/barengs/smpt-sub000/internal/dto"
)

// LedgerReaderSvc defines side-effect-free ledger operations.
type LedgerReaderSvc interface {
	// GetAccount retrieves an account by number.
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)

	// GetAccountsByOwner retrieves all accounts held by one owner reference,
	// oldest first.
	GetAccountsByOwner(ctx context.Context, ownerReference string) ([]domain.Account, error)

	// GetHistory retrieves a newest-first page of transactions where the
	// account is source or destination.
	GetHistory(ctx context.Context, accountNumber string, params dto.ListTransactionsParams) (*dto.TransactionHistoryResponse, error)

	// GetTransaction retrieves one transaction with its double-entry pair.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, []domain.LedgerEntry, error)
}

// LedgerWriterSvc defines balance-mutating ledger operations. Each runs as one
// atomic unit over the rows it touches.
type LedgerWriterSvc interface {
	// OpenAccount provisions a new account with balance 0 and status INACTIVE.
	OpenAccount(ctx context.Context, ownerReference string, creatorUserID string) (*domain.Account, error)

	// Deposit credits an account and records a SUCCESS CASH_DEPOSIT.
	Deposit(ctx context.Context, req dto.DepositRequest, userID string) (*domain.Transaction, error)

	// Withdraw debits an account and records a SUCCESS CASH_WITHDRAWAL.
	Withdraw(ctx context.Context, req dto.WithdrawRequest, userID string) (*domain.Transaction, error)

	// Transfer moves funds between two accounts, zero-sum.
	Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Transaction, error)

	// Reverse creates a corrective transaction that inverts a prior SUCCESS
	// transaction and flips the original to REVERSED.
	Reverse(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// UpdateAccountStatus applies a caller-driven status transition.
	UpdateAccountStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, userID string) (*domain.Account, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
