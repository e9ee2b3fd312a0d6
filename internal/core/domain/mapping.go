package domain

// TransactionTypeMapping maps a business transaction type to the pair of
// account codes an automatic journal entry debits and credits.
//
// A mapping with an empty EntityID is a global default; an entity-specific row
// for the same transaction type takes precedence at resolution time.
type TransactionTypeMapping struct {
	MappingID         string `json:"mappingID"`
	EntityID          string `json:"entityID,omitempty"`
	TransactionType   string `json:"transactionType"`
	DebitAccountCode  string `json:"debitAccountCode"`
	CreditAccountCode string `json:"creditAccountCode"`
	Description       string `json:"description,omitempty"`
	AuditFields
}
