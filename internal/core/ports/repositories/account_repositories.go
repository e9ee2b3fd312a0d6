package repositories

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier, scoped to an entity.
	FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code within an entity.
	FindAccountByCode(ctx context.Context, entityID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs, keyed by account ID.
	FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts for an entity ordered by code.
	ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error)

	// HasPostings reports whether any ledger posting references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when
	// the (entityID, code) pair already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of accounts atomically, skipping codes the
	// entity already has. Used by chart seeding.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's name and type.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
