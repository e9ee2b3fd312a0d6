package services

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/dto"
)

// TransactionPosterSvc is the automatic side of the posting engine: a business
// transaction goes in, a posted balanced journal entry comes out.
type TransactionPosterSvc interface {
	// PostTransaction resolves the transaction type's mapping, builds a balanced
	// two-line journal entry and persists everything atomically. Posting the
	// same transaction ID twice returns the original result with Created=false.
	PostTransaction(ctx context.Context, entityID string, req dto.CreateTransactionRequest, actorID string) (*domain.PostingResult, error)

	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, entityID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, newest first.
	ListTransactions(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// JournalEntrySvc is the manual side of the posting engine: draft entries with
// arbitrary balanced lines, editable until posted.
type JournalEntrySvc interface {
	// CreateEntry creates a manual journal entry. With req.Post set the entry
	// is balance-checked and posted immediately, otherwise it starts as a draft.
	CreateEntry(ctx context.Context, entityID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)

	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, entityID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of journal entries, newest first.
	ListEntries(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// UpdateEntry updates a draft entry. Posted entries are immutable.
	UpdateEntry(ctx context.Context, entityID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error)

	// DeleteEntry deletes a draft entry. Posted entries are immutable.
	DeleteEntry(ctx context.Context, entityID string, entryID string) error

	// PostEntry balance-checks a draft entry and flips it to POSTED, writing
	// its ledger postings atomically.
	PostEntry(ctx context.Context, entityID string, entryID string, actorID string) (*domain.JournalEntry, error)
}

// PostingSvcFacade combines both sides of the posting engine
type PostingSvcFacade interface {
	TransactionPosterSvc
	JournalEntrySvc
}
