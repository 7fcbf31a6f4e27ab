package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	"github.com/barengs/smpt-sub000/internal/models"
	"github.com/barengs/smpt-sub000/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for savings account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_number, owner_reference, balance, status, created_at, created_by, last_updated_at, last_updated_by`

func scanAccountRow(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountNumber,
		&m.OwnerReference,
		&m.Balance,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_number, owner_reference, balance, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountNumber,
		m.OwnerReference,
		m.Balance,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account by its unique account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountNumber, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByOwner retrieves all accounts belonging to an owner reference.
func (r *PgxAccountRepository) FindAccountsByOwner(ctx context.Context, ownerReference string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_reference = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, ownerReference)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for owner "+ownerReference, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// UpdateAccountStatus transitions the account's lifecycle status, guarded on
// the expected current statuses.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountNumber string, from []domain.AccountStatus, to domain.AccountStatus, updatedBy string, updatedAt time.Time) error {
	fromStatuses := make([]string, 0, len(from))
	for _, s := range from {
		fromStatuses = append(fromStatuses, string(s))
	}

	query := `
		UPDATE accounts
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_number = $4 AND status = ANY($5);
	`
	ct, err := r.Pool.Exec(ctx, query, string(to), updatedAt, updatedBy, accountNumber, fromStatuses)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for account "+accountNumber, err)
	}
	if ct.RowsAffected() == 0 {
		// Distinguish a missing account from a failed status guard.
		var exists bool
		if probeErr := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists); probeErr != nil {
			return apperrors.NewAppError(500, "failed to verify account "+accountNumber, probeErr)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: account %s is not in an expected status for transition to %s", apperrors.ErrConflict, accountNumber, to)
	}
	return nil
}

// FindAccountsByNumbersForUpdate retrieves accounts and locks their rows FOR UPDATE.
// Locks are acquired in ascending account-number order so crossing transfers
// cannot deadlock. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.Account, error) {
	if len(accountNumbers) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := make([]string, len(accountNumbers))
	copy(sorted, accountNumbers)
	sort.Strings(sorted)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = ANY($1)
		ORDER BY account_number
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(sorted) {
		missing := []string{}
		for _, number := range sorted {
			if _, ok := accountsMap[number]; !ok {
				missing = append(missing, number)
			}
		}
		return nil, fmt.Errorf("%w: accounts not found for locking: %v", apperrors.ErrNotFound, missing)
	}
	return accountsMap, nil
}

// nonZeroDeltaNumbers returns the account numbers with a non-zero delta in
// ascending order. Batch results are attributed against this queued subset, so
// skipping zero deltas cannot shift an error onto the wrong account.
func nonZeroDeltaNumbers(balanceChanges map[string]decimal.Decimal) []string {
	queued := make([]string, 0, len(balanceChanges))
	for number, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		queued = append(queued, number)
	}
	sort.Strings(queued)
	return queued
}

// UpdateAccountBalancesInTx applies balance deltas to already-locked rows.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`

	batch := &pgx.Batch{}
	queued := nonZeroDeltaNumbers(balanceChanges)
	for _, number := range queued {
		batch.Queue(query, number, balanceChanges[number], updatedAt, updatedBy)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to update balance for account %s: %w", queued[i], err)
		} else if err == nil && ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, queued[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}

// UpdateAccountStatusInTx transitions an already-locked account's status.
func (r *PgxAccountRepository) UpdateAccountStatusInTx(ctx context.Context, tx pgx.Tx, accountNumber string, to domain.AccountStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_number = $4;
	`
	ct, err := tx.Exec(ctx, query, string(to), updatedAt, updatedBy, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to update status for locked account %s: %w", accountNumber, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during status update", apperrors.ErrNotFound, accountNumber)
	}
	return nil
}
