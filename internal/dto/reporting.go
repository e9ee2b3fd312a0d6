package dto

import (
	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account's line in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountID"`
	AccountCode string             `json:"accountCode"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
}

// TrialBalanceResponse is the full trial balance report for an entity.
// TotalDebit always equals TotalCredit; the service refuses to return an
// unbalanced report.
type TrialBalanceResponse struct {
	EntityID      string                    `json:"entityID"`
	AccountsCount int                       `json:"accountsCount"`
	Rows          []TrialBalanceRowResponse `json:"rows"`
	TotalDebit    decimal.Decimal           `json:"totalDebit"`
	TotalCredit   decimal.Decimal           `json:"totalCredit"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			AccountType: r.AccountType,
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	return TrialBalanceResponse{
		EntityID:      tb.EntityID,
		AccountsCount: len(rows),
		Rows:          rows,
		TotalDebit:    tb.TotalDebit,
		TotalCredit:   tb.TotalCredit,
	}
}
