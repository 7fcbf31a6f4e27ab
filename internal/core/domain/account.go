package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus defines the lifecycle state of a savings account.
type AccountStatus string

const (
	AccountInactive AccountStatus = "INACTIVE"
	AccountActive   AccountStatus = "ACTIVE"
	AccountClosed   AccountStatus = "CLOSED"
	AccountBlocked  AccountStatus = "BLOCKED"
	AccountFrozen   AccountStatus = "FROZEN"
)

// Account represents a student savings account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountNumber  string          `json:"accountNumber"`  // Unique business key (e.g., SAV20250310...)
	OwnerReference string          `json:"ownerReference"` // Opaque student/owner id
	Balance        decimal.Decimal `json:"balance"`        // Persisted balance, scale 2, never negative
	Status         AccountStatus   `json:"status"`
	AuditFields
}

// CanDebit reports whether funds may leave the account in its current state.
func (a Account) CanDebit() bool {
	return a.Status == AccountActive
}

// CanCredit reports whether funds may enter the account in its current state.
// Deposits to a fresh INACTIVE account are allowed and activate it.
func (a Account) CanCredit() bool {
	return a.Status == AccountActive || a.Status == AccountInactive
}
