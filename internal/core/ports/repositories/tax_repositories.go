package repositories

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// TaxConfigRepository persists per-entity tax configuration.
type TaxConfigRepository interface {
	// FindByEntityID retrieves the entity's tax config, or apperrors.ErrNotFound
	// when none has been set (the service then applies defaults).
	FindByEntityID(ctx context.Context, entityID string) (*domain.TaxConfig, error)

	// UpsertConfig inserts or replaces the entity's tax config, including its
	// bracket schedule.
	UpsertConfig(ctx context.Context, config domain.TaxConfig) error
}
