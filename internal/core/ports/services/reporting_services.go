package services

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// ReportingService produces ledger-derived reports.
type ReportingService interface {
	// TrialBalance aggregates every account's debit and credit activity and
	// verifies the grand totals match before returning.
	TrialBalance(ctx context.Context, entityID string) (*domain.TrialBalance, error)
}
