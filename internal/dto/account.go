package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/barengs/smpt-sub000/internal/core/domain"
)

// OpenAccountRequest defines the data needed to provision a new savings account.
type OpenAccountRequest struct {
	OwnerReference string `json:"ownerReference" binding:"required"`
}

// UpdateAccountStatusRequest defines a caller-driven account status transition.
type UpdateAccountStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE CLOSED BLOCKED FROZEN"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber  string          `json:"accountNumber"`
	OwnerReference string          `json:"ownerReference"`
	Balance        decimal.Decimal `json:"balance"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber:  a.AccountNumber,
		OwnerReference: a.OwnerReference,
		Balance:        a.Balance,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
