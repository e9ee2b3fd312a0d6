package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow represents a single account's activity in a trial balance.
// Debit and credit are summed independently, not netted.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the full report: one row per account with ledger activity
// (idle accounts are omitted) plus the grand totals of each column.
type TrialBalance struct {
	EntityID    string            `json:"entityID"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// TaxBaseData is the raw ledger aggregation the tax engine computes from:
// net revenue, net expenses, and the slice of expenses recognised as
// depreciation.
type TaxBaseData struct {
	Revenue             decimal.Decimal
	Expenses            decimal.Decimal
	DepreciationExpense decimal.Decimal
}
