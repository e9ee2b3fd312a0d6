package dto

import (
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of a manual journal entry. Exactly one of
// debit/credit should be non-zero; the service validates this.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to create a manual journal entry.
// The entry starts in DRAFT unless Post is true.
type CreateEntryRequest struct {
	EntryDate time.Time                `json:"entryDate" binding:"required"`
	Memo      string                   `json:"memo"`
	Post      bool                     `json:"post"`
	Lines     []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the data allowed for updating a draft entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateEntryRequest struct {
	EntryDate *time.Time                `json:"entryDate"`
	Memo      *string                   `json:"memo"`
	Lines     *[]CreateEntryLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       string              `json:"entryID"`
	EntityID      string              `json:"entityID"`
	TransactionID *string             `json:"transactionID,omitempty"`
	EntryDate     time.Time           `json:"entryDate"`
	Status        domain.EntryStatus  `json:"status"`
	Memo          string              `json:"memo,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Lines         []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return EntryResponse{
		EntryID:       entry.EntryID,
		EntityID:      entry.EntityID,
		TransactionID: entry.TransactionID,
		EntryDate:     entry.EntryDate,
		Status:        entry.Status,
		Memo:          entry.Memo,
		Amount:        entry.Amount,
		Lines:         lines,
		CreatedAt:     entry.CreatedAt,
		CreatedBy:     entry.CreatedBy,
		LastUpdatedAt: entry.LastUpdatedAt,
		LastUpdatedBy: entry.LastUpdatedBy,
	}
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of entries plus cursor to the list DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: res, NextToken: nextToken}
}
