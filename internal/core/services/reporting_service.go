package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/middleware"
)

// reportingService produces ledger-derived reports.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance sums each account's debit and credit columns independently and
// cross-checks the grand totals. Because every posted entry balances, totals
// that diverge mean the ledger itself is corrupt; the report is refused
// rather than served wrong.
func (s *reportingService) TrialBalance(ctx context.Context, entityID string) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, entityID)
	if err != nil {
		logger.Error("Failed to load trial balance data", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		logger.Error("Trial balance totals diverged",
			slog.String("entity_id", entityID),
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
		return nil, fmt.Errorf("%w: trial balance debits %s != credits %s", apperrors.ErrConsistency, totalDebit, totalCredit)
	}

	return &domain.TrialBalance{
		EntityID:    entityID,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}
