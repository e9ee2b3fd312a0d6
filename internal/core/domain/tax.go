package domain

import "github.com/shopspring/decimal"

// TaxBracket is one marginal slice of a progressive corporate tax schedule.
// Income between the previous bracket's threshold and this one is taxed at Rate.
type TaxBracket struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// TaxConfig governs tax computation for one entity. When an entity has no
// config, service-level defaults apply (15% VAT, flat 27% corporate tax).
type TaxConfig struct {
	EntityID string          `json:"entityID"`
	VATRate  decimal.Decimal `json:"vatRate"`
	// CorpTaxBrackets, sorted ascending by threshold. Empty means flat rate.
	CorpTaxBrackets []TaxBracket `json:"corpTaxBrackets"`
	// DepreciationAccountCodes lists the account codes recognised as
	// depreciation expense in the tax report.
	DepreciationAccountCodes []string `json:"depreciationAccountCodes"`
	AuditFields
}

// TaxReport is the statutory tax summary derived from the ledger.
type TaxReport struct {
	EntityID            string          `json:"entityID"`
	VATRate             decimal.Decimal `json:"vatRate"`
	VATDue              decimal.Decimal `json:"vatDue"`
	Revenue             decimal.Decimal `json:"revenue"`
	Expenses            decimal.Decimal `json:"expenses"`
	DepreciationExpense decimal.Decimal `json:"depreciationExpense"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	CorpTax             decimal.Decimal `json:"corpTax"`
}
