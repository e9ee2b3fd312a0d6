package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "ASSET"
	ContraAsset AccountType = "CONTRA_ASSET"
	Liability   AccountType = "LIABILITY"
	Equity      AccountType = "EQUITY"
	Revenue     AccountType = "REVENUE"
	Expense     AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, ContraAsset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account within an entity's chart of accounts.
// Code is unique per entity. The type is frozen once postings reference the
// account, because report classification depends on it.
type Account struct {
	AccountID string      `json:"accountID"`
	EntityID  string      `json:"entityID"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	AuditFields
}
