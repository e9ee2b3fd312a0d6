package dto

import (
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code string             `json:"code" binding:"required"`
	Name string             `json:"name" binding:"required"`
	Type domain.AccountType `json:"type" binding:"required,oneof=ASSET CONTRA_ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name *string             `json:"name"` // Optional: New name
	Type *domain.AccountType `json:"type"` // Optional: rejected once the account has postings
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	EntityID      string             `json:"entityID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		EntityID:      acc.EntityID,
		Code:          acc.Code,
		Name:          acc.Name,
		Type:          acc.Type,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// SeedChartResponse reports the outcome of seeding the default chart.
type SeedChartResponse struct {
	AccountsCreated int               `json:"accountsCreated"`
	Accounts        []AccountResponse `json:"accounts"`
}
