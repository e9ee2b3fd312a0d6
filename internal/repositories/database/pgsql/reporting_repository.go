package pgsql

import (
	"context"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for read-only report
// aggregation queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData sums each account's debit and credit columns
// independently over its ledger postings. Accounts with no postings are
// omitted. A single query keeps the report consistent: it can never observe
// half of an entry's postings.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, entityID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(p.debit), 0) AS total_debit,
		       COALESCE(SUM(p.credit), 0) AS total_credit
		FROM ledger_postings p
		JOIN accounts a ON a.account_id = p.account_id
		WHERE p.entity_id = $1
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data for entity "+entityID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// GetTaxBaseData aggregates net revenue, net expenses and the depreciation
// slice of expenses in one pass over the postings, so all three figures come
// from the same ledger snapshot.
func (r *PgxReportingRepository) GetTaxBaseData(ctx context.Context, entityID string, depreciationCodes []string) (*domain.TaxBaseData, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN a.account_type = 'REVENUE' THEN p.credit - p.debit ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN a.account_type = 'EXPENSE' THEN p.debit - p.credit ELSE 0 END), 0) AS expenses,
			COALESCE(SUM(CASE WHEN a.account_type = 'EXPENSE' AND a.code = ANY($2) THEN p.debit - p.credit ELSE 0 END), 0) AS depreciation
		FROM ledger_postings p
		JOIN accounts a ON a.account_id = p.account_id
		WHERE p.entity_id = $1;
	`
	var base domain.TaxBaseData
	err := r.Pool.QueryRow(ctx, query, entityID, depreciationCodes).Scan(&base.Revenue, &base.Expenses, &base.DepreciationExpense)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax base data for entity "+entityID, err)
	}
	return &base, nil
}
