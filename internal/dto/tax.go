package dto

import (
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TaxBracketDTO is one marginal slice of the corporate tax schedule.
type TaxBracketDTO struct {
	Threshold decimal.Decimal `json:"threshold" binding:"required"`
	Rate      decimal.Decimal `json:"rate"`
}

// UpsertTaxConfigRequest defines the data for replacing an entity's tax config.
// An empty bracket list means the flat default corporate rate applies.
type UpsertTaxConfigRequest struct {
	VATRate                  decimal.Decimal `json:"vatRate" binding:"required"`
	CorpTaxBrackets          []TaxBracketDTO `json:"corpTaxBrackets" binding:"omitempty,dive"`
	DepreciationAccountCodes []string        `json:"depreciationAccountCodes"`
}

// TaxConfigResponse defines the data returned for an entity's tax config.
type TaxConfigResponse struct {
	EntityID                 string          `json:"entityID"`
	VATRate                  decimal.Decimal `json:"vatRate"`
	CorpTaxBrackets          []TaxBracketDTO `json:"corpTaxBrackets"`
	DepreciationAccountCodes []string        `json:"depreciationAccountCodes"`
	LastUpdatedAt            time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy            string          `json:"lastUpdatedBy,omitempty"`
}

// ToTaxConfigResponse converts a domain.TaxConfig to its DTO.
func ToTaxConfigResponse(cfg *domain.TaxConfig) TaxConfigResponse {
	brackets := make([]TaxBracketDTO, len(cfg.CorpTaxBrackets))
	for i, b := range cfg.CorpTaxBrackets {
		brackets[i] = TaxBracketDTO{Threshold: b.Threshold, Rate: b.Rate}
	}
	return TaxConfigResponse{
		EntityID:                 cfg.EntityID,
		VATRate:                  cfg.VATRate,
		CorpTaxBrackets:          brackets,
		DepreciationAccountCodes: cfg.DepreciationAccountCodes,
		LastUpdatedAt:            cfg.LastUpdatedAt,
		LastUpdatedBy:            cfg.LastUpdatedBy,
	}
}

// TaxReportResponse is the statutory tax summary for an entity.
type TaxReportResponse struct {
	EntityID            string          `json:"entityID"`
	VATRate             decimal.Decimal `json:"vatRate"`
	VATDue              decimal.Decimal `json:"vatDue"`
	Revenue             decimal.Decimal `json:"revenue"`
	Expenses            decimal.Decimal `json:"expenses"`
	DepreciationExpense decimal.Decimal `json:"depreciationExpense"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	CorpTax             decimal.Decimal `json:"corpTax"`
}

// ToTaxReportResponse converts a domain.TaxReport to its DTO.
func ToTaxReportResponse(report *domain.TaxReport) TaxReportResponse {
	return TaxReportResponse{
		EntityID:            report.EntityID,
		VATRate:             report.VATRate,
		VATDue:              report.VATDue,
		Revenue:             report.Revenue,
		Expenses:            report.Expenses,
		DepreciationExpense: report.DepreciationExpense,
		TaxableIncome:       report.TaxableIncome,
		CorpTax:             report.CorpTax,
	}
}
