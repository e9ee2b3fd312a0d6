package repositories

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// MappingReader defines read operations for the transaction-type mapping table
type MappingReader interface {
	// ResolveMapping returns the mapping for a transaction type, preferring an
	// entity-specific row over a global default. Returns
	// apperrors.ErrMappingNotFound when neither exists.
	ResolveMapping(ctx context.Context, entityID, transactionType string) (*domain.TransactionTypeMapping, error)

	// ListMappings retrieves the entity's mappings plus the global defaults.
	ListMappings(ctx context.Context, entityID string) ([]domain.TransactionTypeMapping, error)
}

// MappingWriter defines write operations for the transaction-type mapping table
type MappingWriter interface {
	// UpsertMapping inserts or replaces the mapping for (entityID, transactionType).
	UpsertMapping(ctx context.Context, mapping domain.TransactionTypeMapping) error
}

// MappingRepositoryFacade combines all mapping-related repository interfaces
type MappingRepositoryFacade interface {
	MappingReader
	MappingWriter
}
