package repositories

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries behind the
// trial balance and tax reports. Each method runs as a single snapshot query,
// so a report never observes half of a journal entry's postings.
type ReportingRepository interface {
	// GetTrialBalanceData sums debit and credit independently per account with
	// at least one posting, ordered by account code.
	GetTrialBalanceData(ctx context.Context, entityID string) ([]domain.TrialBalanceRow, error)

	// GetTaxBaseData aggregates net revenue (credit - debit over REVENUE
	// accounts), net expenses (debit - credit over EXPENSE accounts) and the
	// depreciation slice of expenses identified by the given account codes.
	GetTaxBaseData(ctx context.Context, entityID string, depreciationCodes []string) (*domain.TaxBaseData, error)
}
