package services

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/dto"
)

// TaxSvcFacade computes VAT and progressive corporate tax from the ledger and
// manages per-entity tax configuration.
type TaxSvcFacade interface {
	// TaxReport aggregates revenue, expenses and depreciation from the ledger
	// and computes VAT due plus corporate tax on taxable income.
	TaxReport(ctx context.Context, entityID string) (*domain.TaxReport, error)

	// GetConfig returns the entity's tax config, falling back to defaults when
	// none has been set.
	GetConfig(ctx context.Context, entityID string) (*domain.TaxConfig, error)

	// UpsertConfig replaces the entity's tax config. The bracket schedule must
	// have strictly increasing positive thresholds and non-negative rates.
	UpsertConfig(ctx context.Context, entityID string, req dto.UpsertTaxConfigRequest, actorID string) (*domain.TaxConfig, error)
}
