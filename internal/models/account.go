package models

import (
	"github.com/shopspring/decimal"
)

// AccountStatus mirrors domain.AccountStatus at the storage layer.
type AccountStatus string

const (
	AccountInactive AccountStatus = "INACTIVE"
	AccountActive   AccountStatus = "ACTIVE"
	AccountClosed   AccountStatus = "CLOSED"
	AccountBlocked  AccountStatus = "BLOCKED"
	AccountFrozen   AccountStatus = "FROZEN"
)

// Account represents a savings account row.
type Account struct {
	AccountNumber  string          `db:"account_number"`
	OwnerReference string          `db:"owner_reference"`
	Balance        decimal.Decimal `db:"balance"`
	Status         AccountStatus   `db:"status"`
	AuditFields
}

// ChartOfAccount is one code in the chart of accounts used by ledger entries.
type ChartOfAccount struct {
	CoaCode     string `db:"coa_code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"` // ASSET, LIABILITY, ...
	IsActive    bool   `db:"is_active"`
	AuditFields
}
