package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single business event (sale, expense, disposal gain, ...)
// submitted by a caller. It is immutable once created and triggers exactly one
// automatic journal entry through the posting engine.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	EntityID      string            `json:"entityID"`
	Type          string            `json:"type"`
	Amount        decimal.Decimal   `json:"amount"` // Always positive
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	AuditFields
}
