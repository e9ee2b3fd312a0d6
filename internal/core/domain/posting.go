package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingResult is what the posting engine hands back after an automatic
// posting: the transaction, the journal entry it produced, and the resolved
// accounts. Created is false when the transaction ID had already been posted
// and the existing entry was returned instead.
type PostingResult struct {
	Transaction   Transaction
	Entry         JournalEntry
	DebitAccount  Account
	CreditAccount Account
	Created       bool
}

// LedgerPosting is the atomic debit-or-credit unit the trial balance and tax
// engines consume. Every posted journal entry expands into >= 2 postings whose
// debit total equals their credit total.
type LedgerPosting struct {
	PostingID   string          `json:"postingID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	EntityID    string          `json:"entityID"`
	PostingDate time.Time       `json:"postingDate"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
