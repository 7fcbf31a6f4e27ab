package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// Chart-of-accounts codes the savings ledger posts against. Seeded by the
// initial migration; kept in one place so entry pairs stay consistent.
const (
	CoaCash           = "101" // Kas (asset)
	CoaStudentSavings = "201" // Tabungan santri (liability)
)

// BuildEntryPair produces the debit/credit LedgerEntry pair for a transaction.
// Both entries carry the transaction amount; debit amount always equals credit
// amount. Reversal types invert the pair of their original type.
func BuildEntryPair(txn domain.Transaction, now time.Time) ([]domain.LedgerEntry, error) {
	var debitCoa, creditCoa string

	switch txn.TransactionType {
	case domain.CashDeposit, domain.CashWithdrawalReversal:
		// Money enters the till; the school owes the student more.
		debitCoa, creditCoa = CoaCash, CoaStudentSavings
	case domain.CashWithdrawal, domain.CashDepositReversal:
		// Money leaves the till; the school owes the student less.
		debitCoa, creditCoa = CoaStudentSavings, CoaCash
	case domain.FundTransfer, domain.FundTransferReversal:
		// Liability moves between students; cash is untouched.
		debitCoa, creditCoa = CoaStudentSavings, CoaStudentSavings
	default:
		return nil, fmt.Errorf("no ledger entry mapping for transaction type %s", txn.TransactionType)
	}

	return []domain.LedgerEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			CoaCode:       debitCoa,
			Side:          domain.Debit,
			Amount:        txn.Amount,
			CreatedAt:     now,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			CoaCode:       creditCoa,
			Side:          domain.Credit,
			Amount:        txn.Amount,
			CreatedAt:     now,
		},
	}, nil
}
