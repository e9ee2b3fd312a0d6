package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/fintally/fintally_backend/internal/middleware"
	"github.com/fintally/fintally_backend/internal/utils/taxcalc"
)

// TaxDefaults are the rates and accounts applied when an entity has no tax
// config of its own.
type TaxDefaults struct {
	VATRate                 decimal.Decimal
	CorpTaxRate             decimal.Decimal
	DepreciationExpenseCode string
}

// taxService computes VAT and progressive corporate tax from ledger
// aggregates and manages per-entity tax configuration.
type taxService struct {
	taxRepo       portsrepo.TaxConfigRepository
	reportingRepo portsrepo.ReportingRepository
	defaults      TaxDefaults
}

// NewTaxService creates a new tax service.
func NewTaxService(taxRepo portsrepo.TaxConfigRepository, reportingRepo portsrepo.ReportingRepository, defaults TaxDefaults) portssvc.TaxSvcFacade {
	return &taxService{
		taxRepo:       taxRepo,
		reportingRepo: reportingRepo,
		defaults:      defaults,
	}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// TaxReport aggregates net revenue, net expenses and the depreciation slice
// from the ledger, then computes VAT on revenue and corporate tax on taxable
// income. Expenses already include depreciation, so taxable income is plain
// revenue minus expenses.
func (s *taxService) TaxReport(ctx context.Context, entityID string) (*domain.TaxReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cfg, err := s.GetConfig(ctx, entityID)
	if err != nil {
		return nil, err
	}

	base, err := s.reportingRepo.GetTaxBaseData(ctx, entityID, cfg.DepreciationAccountCodes)
	if err != nil {
		logger.Error("Failed to load tax base data", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, err
	}

	vatDue := base.Revenue.Mul(cfg.VATRate)
	taxableIncome := base.Revenue.Sub(base.Expenses)
	corpTax := taxcalc.ComputeBracketedTax(taxableIncome, cfg.CorpTaxBrackets, s.defaults.CorpTaxRate)

	return &domain.TaxReport{
		EntityID:            entityID,
		VATRate:             cfg.VATRate,
		VATDue:              vatDue,
		Revenue:             base.Revenue,
		Expenses:            base.Expenses,
		DepreciationExpense: base.DepreciationExpense,
		TaxableIncome:       taxableIncome,
		CorpTax:             corpTax,
	}, nil
}

// GetConfig returns the entity's tax config, or the service defaults when the
// entity never set one.
func (s *taxService) GetConfig(ctx context.Context, entityID string) (*domain.TaxConfig, error) {
	cfg, err := s.taxRepo.FindByEntityID(ctx, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.TaxConfig{
				EntityID:                 entityID,
				VATRate:                  s.defaults.VATRate,
				CorpTaxBrackets:          nil,
				DepreciationAccountCodes: []string{s.defaults.DepreciationExpenseCode},
			}, nil
		}
		return nil, err
	}
	if len(cfg.DepreciationAccountCodes) == 0 {
		cfg.DepreciationAccountCodes = []string{s.defaults.DepreciationExpenseCode}
	}
	return cfg, nil
}

// UpsertConfig replaces the entity's tax config after validating the rates
// and the bracket schedule.
func (s *taxService) UpsertConfig(ctx context.Context, entityID string, req dto.UpsertTaxConfigRequest, actorID string) (*domain.TaxConfig, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.VATRate.IsNegative() || req.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: VAT rate must be between 0 and 1, got %s", apperrors.ErrValidation, req.VATRate)
	}

	brackets := make([]domain.TaxBracket, len(req.CorpTaxBrackets))
	prev := decimal.Zero
	for i, b := range req.CorpTaxBrackets {
		if !b.Threshold.GreaterThan(prev) {
			return nil, fmt.Errorf("%w: bracket thresholds must be positive and strictly increasing", apperrors.ErrValidation)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: bracket rate must be between 0 and 1, got %s", apperrors.ErrValidation, b.Rate)
		}
		brackets[i] = domain.TaxBracket{Threshold: b.Threshold, Rate: b.Rate}
		prev = b.Threshold
	}

	codes := req.DepreciationAccountCodes
	if len(codes) == 0 {
		codes = []string{s.defaults.DepreciationExpenseCode}
	}

	now := time.Now()
	cfg := domain.TaxConfig{
		EntityID:                 entityID,
		VATRate:                  req.VATRate,
		CorpTaxBrackets:          brackets,
		DepreciationAccountCodes: codes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.taxRepo.UpsertConfig(ctx, cfg); err != nil {
		logger.Error("Failed to upsert tax config", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, err
	}

	logger.Info("Tax config upserted", slog.String("entity_id", entityID), slog.String("vat_rate", req.VATRate.String()))
	return &cfg, nil
}
