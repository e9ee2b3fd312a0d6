package services

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/dto"
)

// MappingSvcFacade manages the transaction-type mapping table that drives
// automatic posting.
type MappingSvcFacade interface {
	// ResolveMapping returns the effective mapping for a transaction type,
	// preferring an entity-specific row over a global default.
	ResolveMapping(ctx context.Context, entityID string, transactionType string) (*domain.TransactionTypeMapping, error)

	// ListMappings retrieves the entity's mappings plus the global defaults.
	ListMappings(ctx context.Context, entityID string) ([]domain.TransactionTypeMapping, error)

	// UpsertMapping creates or replaces the entity's mapping for a transaction
	// type, after checking both account codes exist in the entity's chart.
	UpsertMapping(ctx context.Context, entityID string, req dto.UpsertMappingRequest, actorID string) (*domain.TransactionTypeMapping, error)
}
