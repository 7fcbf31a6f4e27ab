package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barengs/smpt-sub000/internal/apperrors"
	"github.com/barengs/smpt-sub000/internal/core/domain"
	portsrepo "github.com/barengs/smpt-sub000/internal/core/ports/repositories"
	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/dto"
	"github.com/barengs/smpt-sub000/internal/middleware"
	"github.com/barengs/smpt-sub000/internal/utils"
	"github.com/barengs/smpt-sub000/internal/utils/accounting"
)

var (
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrSameAccount         = fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	ErrAccountNotUsable    = fmt.Errorf("%w: account cannot be used in its current status", apperrors.ErrConflict)
	ErrNotReversible       = fmt.Errorf("%w: transaction cannot be reversed", apperrors.ErrConflict)
	ErrAccountNotClosable  = fmt.Errorf("%w: account balance must be zero to close", apperrors.ErrConflict)
	ErrReferenceGeneration = fmt.Errorf("%w: failed to generate a unique reference number", apperrors.ErrDuplicate)
)

// refGenAttempts bounds the collision-retry loop for reference numbers.
const refGenAttempts = 5

// ledgerService provides the savings account and transaction operations.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	clock       portssvc.Clock
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, clock portssvc.Clock) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		clock:       clock,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// generateUniqueReference produces a reference number that is not yet taken,
// probing the transactions table and retrying a bounded number of times.
func (s *ledgerService) generateUniqueReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < refGenAttempts; attempt++ {
		ref, err := utils.GenerateReferenceNumber(utils.PrefixTransaction, s.clock.Now())
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReferenceGeneration, err)
		}
		_, err = s.txnRepo.FindTransactionByReference(ctx, ref)
		if errors.Is(err, apperrors.ErrNotFound) {
			return ref, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to probe reference %s: %w", ref, err)
		}
		// Taken, try again with fresh randomness.
	}
	return "", ErrReferenceGeneration
}

// OpenAccount provisions a new account with balance 0 and status INACTIVE.
// The first deposit activates it.
func (s *ledgerService) OpenAccount(ctx context.Context, ownerReference string, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if ownerReference == "" {
		return nil, fmt.Errorf("%w: owner reference is required", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	var account domain.Account
	for attempt := 0; attempt < refGenAttempts; attempt++ {
		number, err := utils.GenerateReferenceNumber(utils.PrefixAccount, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReferenceGeneration, err)
		}

		account = domain.Account{
			AccountNumber:  number,
			OwnerReference: ownerReference,
			Balance:        decimal.Zero,
			Status:         domain.AccountInactive,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		err = s.accountRepo.SaveAccount(ctx, account)
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		if err != nil {
			logger.Error("Failed to save new account", slog.String("owner", ownerReference), slog.String("error", err.Error()))
			return nil, err
		}
		logger.Info("Account opened", slog.String("account_number", number), slog.String("owner", ownerReference))
		return &account, nil
	}
	return nil, ErrReferenceGeneration
}

// GetAccount retrieves an account by number.
func (s *ledgerService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// GetAccountsByOwner retrieves all accounts held by one owner reference.
func (s *ledgerService) GetAccountsByOwner(ctx context.Context, ownerReference string) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByOwner(ctx, ownerReference)
}

// Deposit credits an account and records a SUCCESS CASH_DEPOSIT. A deposit to
// a fresh INACTIVE account activates it as part of the same unit.
func (s *ledgerService) Deposit(ctx context.Context, req dto.DepositRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if !account.CanCredit() {
		return nil, fmt.Errorf("%s: %w", account.AccountNumber, ErrAccountNotUsable)
	}

	balanceChanges := map[string]decimal.Decimal{req.AccountNumber: req.Amount}
	txn, err := s.saveWithFreshReference(
		func() (*domain.Transaction, []domain.LedgerEntry, error) {
			return s.buildTransaction(ctx, domain.CashDeposit, req.Amount, "", req.AccountNumber, req.Description, userID)
		},
		func(txn *domain.Transaction, entries []domain.LedgerEntry) error {
			return s.txnRepo.SaveTransaction(ctx, *txn, entries, balanceChanges)
		},
	)
	if err != nil {
		logger.Error("Failed to save deposit", slog.String("account", req.AccountNumber), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deposit recorded",
		slog.String("reference", txn.ReferenceNumber),
		slog.String("account", req.AccountNumber),
		slog.String("amount", req.Amount.String()),
	)
	return txn, nil
}

// Withdraw debits an account and records a SUCCESS CASH_WITHDRAWAL.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if !account.CanDebit() {
		return nil, fmt.Errorf("%s: %w", account.AccountNumber, ErrAccountNotUsable)
	}
	// Fast-fail check; the repository re-verifies under the row lock.
	if account.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: account %s has balance %s", apperrors.ErrInsufficientBalance, account.AccountNumber, account.Balance.String())
	}

	balanceChanges := map[string]decimal.Decimal{req.AccountNumber: req.Amount.Neg()}
	txn, err := s.saveWithFreshReference(
		func() (*domain.Transaction, []domain.LedgerEntry, error) {
			return s.buildTransaction(ctx, domain.CashWithdrawal, req.Amount, req.AccountNumber, "", req.Description, userID)
		},
		func(txn *domain.Transaction, entries []domain.LedgerEntry) error {
			return s.txnRepo.SaveTransaction(ctx, *txn, entries, balanceChanges)
		},
	)
	if err != nil {
		logger.Error("Failed to save withdrawal", slog.String("account", req.AccountNumber), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Withdrawal recorded",
		slog.String("reference", txn.ReferenceNumber),
		slog.String("account", req.AccountNumber),
		slog.String("amount", req.Amount.String()),
	)
	return txn, nil
}

// Transfer moves funds between two accounts. The paired deltas are zero-sum,
// so total balance across accounts is conserved.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if req.SourceAccount == req.DestinationAccount {
		return nil, ErrSameAccount
	}

	source, err := s.accountRepo.FindAccountByNumber(ctx, req.SourceAccount)
	if err != nil {
		return nil, fmt.Errorf("source account %s: %w", req.SourceAccount, err)
	}
	destination, err := s.accountRepo.FindAccountByNumber(ctx, req.DestinationAccount)
	if err != nil {
		return nil, fmt.Errorf("destination account %s: %w", req.DestinationAccount, err)
	}
	if !source.CanDebit() {
		return nil, fmt.Errorf("source %s: %w", source.AccountNumber, ErrAccountNotUsable)
	}
	if !destination.CanCredit() {
		return nil, fmt.Errorf("destination %s: %w", destination.AccountNumber, ErrAccountNotUsable)
	}
	if source.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: account %s has balance %s", apperrors.ErrInsufficientBalance, source.AccountNumber, source.Balance.String())
	}

	balanceChanges := map[string]decimal.Decimal{
		req.SourceAccount:      req.Amount.Neg(),
		req.DestinationAccount: req.Amount,
	}
	txn, err := s.saveWithFreshReference(
		func() (*domain.Transaction, []domain.LedgerEntry, error) {
			return s.buildTransaction(ctx, domain.FundTransfer, req.Amount, req.SourceAccount, req.DestinationAccount, req.Description, userID)
		},
		func(txn *domain.Transaction, entries []domain.LedgerEntry) error {
			return s.txnRepo.SaveTransaction(ctx, *txn, entries, balanceChanges)
		},
	)
	if err != nil {
		logger.Error("Failed to save transfer",
			slog.String("source", req.SourceAccount),
			slog.String("destination", req.DestinationAccount),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Transfer recorded",
		slog.String("reference", txn.ReferenceNumber),
		slog.String("source", req.SourceAccount),
		slog.String("destination", req.DestinationAccount),
		slog.String("amount", req.Amount.String()),
	)
	return txn, nil
}

// buildTransaction assembles a SUCCESS transaction with a fresh unique
// reference and its double-entry pair.
func (s *ledgerService) buildTransaction(ctx context.Context, txnType domain.TransactionType, amount decimal.Decimal, source, destination, description, userID string) (*domain.Transaction, []domain.LedgerEntry, error) {
	ref, err := s.generateUniqueReference(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		TransactionType:    txnType,
		Amount:             amount,
		Status:             domain.TransactionSuccess,
		ReferenceNumber:    ref,
		SourceAccount:      source,
		DestinationAccount: destination,
		Description:        description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entries, err := accounting.BuildEntryPair(txn, now)
	if err != nil {
		return nil, nil, err
	}
	return &txn, entries, nil
}

// saveWithFreshReference assembles and persists a transaction, reassembling
// with a regenerated reference when the insert loses a collision race to a
// concurrent writer between the probe and the insert.
func (s *ledgerService) saveWithFreshReference(
	assemble func() (*domain.Transaction, []domain.LedgerEntry, error),
	save func(txn *domain.Transaction, entries []domain.LedgerEntry) error,
) (*domain.Transaction, error) {
	for attempt := 0; attempt < refGenAttempts; attempt++ {
		txn, entries, err := assemble()
		if err != nil {
			return nil, err
		}
		err = save(txn, entries)
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return txn, nil
	}
	return nil, ErrReferenceGeneration
}

// Reverse creates a corrective transaction that inverts a prior SUCCESS
// transaction. The original flips to REVERSED in the same atomic unit, so a
// transaction can be reversed at most once.
func (s *ledgerService) Reverse(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.TransactionType.IsReversal() {
		return nil, fmt.Errorf("transaction %s is itself a reversal: %w", transactionID, ErrNotReversible)
	}
	if original.Status != domain.TransactionSuccess {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrConflict, transactionID, original.Status)
	}

	balanceChanges := map[string]decimal.Decimal{}
	if original.SourceAccount != "" {
		balanceChanges[original.SourceAccount] = original.Amount
	}
	if original.DestinationAccount != "" {
		balanceChanges[original.DestinationAccount] = balanceChanges[original.DestinationAccount].Sub(original.Amount)
	}

	// Every affected account must still be able to take the corrective
	// movement. Reversing into a closed account would leave it with a balance.
	numbers := make([]string, 0, len(balanceChanges))
	for number := range balanceChanges {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	for _, number := range numbers {
		account, err := s.accountRepo.FindAccountByNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", number, err)
		}
		delta := balanceChanges[number]
		if delta.IsPositive() && !account.CanCredit() {
			return nil, fmt.Errorf("account %s: %w", number, ErrAccountNotUsable)
		}
		if delta.IsNegative() && !account.CanDebit() {
			return nil, fmt.Errorf("account %s: %w", number, ErrAccountNotUsable)
		}
	}

	// The reversal swaps the movement: funds flow back the way they came.
	reversal, err := s.saveWithFreshReference(
		func() (*domain.Transaction, []domain.LedgerEntry, error) {
			txn, entries, err := s.buildTransaction(ctx,
				original.TransactionType.ReversalType(),
				original.Amount,
				original.DestinationAccount,
				original.SourceAccount,
				"Reversal of "+original.ReferenceNumber,
				userID,
			)
			if err != nil {
				return nil, nil, err
			}
			txn.OriginalTxnID = &original.TransactionID
			return txn, entries, nil
		},
		func(txn *domain.Transaction, entries []domain.LedgerEntry) error {
			return s.txnRepo.SaveReversal(ctx, *txn, entries, balanceChanges, original.TransactionID, userID, txn.CreatedAt)
		},
	)
	if err != nil {
		logger.Error("Failed to save reversal", slog.String("original", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction reversed",
		slog.String("original", original.ReferenceNumber),
		slog.String("reversal", reversal.ReferenceNumber),
	)
	return reversal, nil
}

// GetTransaction retrieves one transaction with its double-entry pair.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, []domain.LedgerEntry, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	return txn, entries, nil
}

// GetHistory retrieves a newest-first page of transactions where the account
// is source or destination.
func (s *ledgerService) GetHistory(ctx context.Context, accountNumber string, params dto.ListTransactionsParams) (*dto.TransactionHistoryResponse, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}

	transactions, nextToken, err := s.txnRepo.ListTransactionsByAccount(ctx, accountNumber, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.TransactionHistoryResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// UpdateAccountStatus applies a caller-driven status transition. Closing
// requires a zero balance; closed accounts stay closed.
func (s *ledgerService) UpdateAccountStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrConflict, accountNumber)
	}
	if status == domain.AccountClosed && !account.Balance.IsZero() {
		return nil, fmt.Errorf("account %s: %w", accountNumber, ErrAccountNotClosable)
	}

	from := []domain.AccountStatus{domain.AccountInactive, domain.AccountActive, domain.AccountBlocked, domain.AccountFrozen}
	now := s.clock.Now()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountNumber, from, status, userID, now); err != nil {
		return nil, err
	}

	logger.Info("Account status updated",
		slog.String("account", accountNumber),
		slog.String("from", string(account.Status)),
		slog.String("to", string(status)),
	)
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}
