package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry is a balanced set of lines representing one economic event.
//
// Automatic entries (TransactionID set) are created directly in POSTED status
// with exactly two lines. Manual entries start in DRAFT, may carry any number
// of lines >= 2, and become immutable once posted.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	EntityID      string          `json:"entityID"`
	TransactionID *string         `json:"transactionID,omitempty"` // Unique when set; idempotency key for automatic posting
	EntryDate     time.Time       `json:"entryDate"`
	Status        EntryStatus     `json:"status"`
	Memo          string          `json:"memo"`
	Lines         []JournalLine   `json:"lines,omitempty"`
	Amount        decimal.Decimal `json:"amount"` // Debit-side total of the entry
	AuditFields
}

// JournalLine is one debit or credit within a journal entry. Exactly one of
// Debit/Credit is non-zero; the zero side is stored as 0, not null, so
// aggregation is a plain SUM.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
