package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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
	"github.com/barengs/smpt-sub000/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, transaction_type, amount, status, reference_number, source_account, destination_account, description, original_transaction_id, reversing_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionType,
		&m.Amount,
		&m.Status,
		&m.ReferenceNumber,
		&m.SourceAccount,
		&m.DestinationAccount,
		&m.Description,
		&m.OriginalTxnID,
		&m.ReversingTxnID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertTransactionInTx inserts the transaction row and its double-entry pair.
func (r *PgxTransactionRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.LedgerEntry) error {
	m := mapping.ToModelTransaction(txn)

	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, txnQuery,
		m.TransactionID,
		m.TransactionType,
		m.Amount,
		m.Status,
		m.ReferenceNumber,
		m.SourceAccount,
		m.DestinationAccount,
		m.Description,
		m.OriginalTxnID,
		m.ReversingTxnID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction reference %s already exists", apperrors.ErrDuplicate, m.ReferenceNumber)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	entryQuery := `
		INSERT INTO ledger_entries (entry_id, transaction_id, coa_code, side, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		me := mapping.ToModelLedgerEntry(entry)
		batch.Queue(entryQuery, me.EntryID, me.TransactionID, me.CoaCode, me.Side, me.Amount, me.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert ledger entries for transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// applyBalanceChangesInTx locks the affected accounts, verifies each account
// can still take its delta and that no delta drives a balance negative, then
// applies the deltas. The locked rows are authoritative; service-level
// pre-checks only fail fast.
func (r *PgxTransactionRepository) applyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) (map[string]domain.Account, error) {
	accountNumbers := make([]string, 0, len(balanceChanges))
	for number := range balanceChanges {
		accountNumbers = append(accountNumbers, number)
	}

	locked, err := r.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, accountNumbers)
	if err != nil {
		return nil, err
	}

	for number, delta := range balanceChanges {
		account := locked[number]
		if delta.IsPositive() && !account.CanCredit() {
			return nil, fmt.Errorf("%w: account %s is %s and cannot be credited", apperrors.ErrConflict, number, account.Status)
		}
		if delta.IsNegative() && !account.CanDebit() {
			return nil, fmt.Errorf("%w: account %s is %s and cannot be debited", apperrors.ErrConflict, number, account.Status)
		}
		if account.Balance.Add(delta).IsNegative() {
			return nil, fmt.Errorf("%w: account %s has balance %s", apperrors.ErrInsufficientBalance, number, account.Balance.String())
		}
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, updatedBy, updatedAt); err != nil {
		return nil, err
	}
	return locked, nil
}

// SaveTransaction persists a transaction with its ledger entries and applies
// balance deltas to the affected accounts within one database transaction.
// A deposit to a fresh INACTIVE account activates it in the same unit.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored after a successful commit

	locked, err := r.applyBalanceChangesInTx(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt)
	if err != nil {
		return err
	}

	if err := r.insertTransactionInTx(ctx, tx, txn, entries); err != nil {
		return err
	}

	if txn.TransactionType == domain.CashDeposit && txn.DestinationAccount != "" {
		if acc, ok := locked[txn.DestinationAccount]; ok && acc.Status == domain.AccountInactive {
			if err := r.accountRepo.UpdateAccountStatusInTx(ctx, tx, txn.DestinationAccount, domain.AccountActive, txn.CreatedBy, txn.CreatedAt); err != nil {
				return err
			}
		}
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists a reversal transaction and flips the original's status
// SUCCESS -> REVERSED in the same database transaction. The flip is guarded on
// the current status, so concurrent reversal attempts lose with ErrConflict.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalTxnID string, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	flipQuery := `
		UPDATE transactions
		SET status = $1, reversing_transaction_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $5 AND status = $6;
	`
	ct, err := tx.Exec(ctx, flipQuery,
		string(domain.TransactionReversed),
		reversal.TransactionID,
		updatedAt,
		updatedBy,
		originalTxnID,
		string(domain.TransactionSuccess),
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s reversed: %w", originalTxnID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is not in SUCCESS status", apperrors.ErrConflict, originalTxnID)
	}

	if _, err := r.applyBalanceChangesInTx(ctx, tx, balanceChanges, updatedBy, updatedAt); err != nil {
		return err
	}

	if err := r.insertTransactionInTx(ctx, tx, reversal, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its primary key.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByReference retrieves a transaction by its unique business reference.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference_number = $1;`

	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, referenceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by reference "+referenceNumber, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindEntriesByTransactionID retrieves the double-entry pair of a transaction.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, transaction_id, coa_code, side, amount, created_at
		FROM ledger_entries
		WHERE transaction_id = $1
		ORDER BY side; -- CREDIT before DEBIT, stable for a fixed pair
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(&m.EntryID, &m.TransactionID, &m.CoaCode, &m.Side, &m.Amount, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

// ListTransactionsByAccount retrieves a newest-first page of transactions where
// the account is source or destination, using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (source_account = $1 OR destination_account = $1)
	`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	args := []interface{}{accountNumber}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND created_at < $2`
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountNumber, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountNumber, err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountNumber, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		token := pagination.EncodeDateBasedToken(results[limit-1].CreatedAt)
		nextTokenVal = &token
	}

	transactions := make([]domain.Transaction, len(results))
	for i, m := range results {
		transactions[i] = mapping.ToDomainTransaction(m)
	}
	return transactions, nextTokenVal, nil
}
