package services

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the entity's chart of accounts ordered by code.
	ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount updates an existing account. Type changes are rejected once
	// the account has ledger postings.
	UpdateAccount(ctx context.Context, entityID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// SeedDefaultChart creates the standard chart of accounts for an entity,
	// skipping codes the entity already has. Returns the accounts created.
	SeedDefaultChart(ctx context.Context, entityID string, actorID string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
