package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves an account by its unique account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByOwner retrieves all accounts belonging to an owner reference.
	FindAccountsByOwner(ctx context.Context, ownerReference string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus transitions the account's lifecycle status.
	// Implementations must guard the transition on the expected current statuses
	// and report apperrors.ErrConflict when the guard fails.
	UpdateAccountStatus(ctx context.Context, accountNumber string, from []domain.AccountStatus, to domain.AccountStatus, updatedBy string, updatedAt time.Time) error
}

// AccountLocker defines the in-transaction locking operations used by the
// ledger repository while it mutates balances.
type AccountLocker interface {
	// FindAccountsByNumbersForUpdate retrieves accounts and locks their rows
	// FOR UPDATE. Implementations must acquire locks in ascending
	// account-number order so crossing transfers cannot deadlock.
	// Must be called within a transaction.
	FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies balance deltas to already-locked rows.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// UpdateAccountStatusInTx transitions an already-locked account's status.
	UpdateAccountStatusInTx(ctx context.Context, tx pgx.Tx, accountNumber string, to domain.AccountStatus, updatedBy string, updatedAt time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
