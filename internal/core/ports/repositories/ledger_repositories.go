package repositories

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// LedgerWriter defines the write operations of the posting engine's store.
// Every method that creates a posted entry writes the entry, its lines and its
// ledger postings in one database transaction: partial results are never
// visible.
type LedgerWriter interface {
	// CreateTransactionWithEntry atomically persists a business transaction,
	// its posted journal entry, the entry's lines and the derived ledger
	// postings. Returns apperrors.ErrDuplicate when the transaction ID has
	// already been posted; callers treat that as "already done" and fetch the
	// existing entry.
	CreateTransactionWithEntry(ctx context.Context, txn domain.Transaction, entry domain.JournalEntry) error

	// SaveEntry persists a manual journal entry with its lines. Entries saved
	// in POSTED status also get their ledger postings in the same transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry replaces a draft entry's fields and lines. The repository
	// guards on status = DRAFT; a posted entry yields apperrors.ErrImmutableEntry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes a draft entry and its lines. A posted entry yields
	// apperrors.ErrImmutableEntry.
	DeleteEntry(ctx context.Context, entityID, entryID string) error

	// PostEntry flips a draft entry to POSTED and writes its ledger postings
	// in one transaction. Guards on status = DRAFT.
	PostEntry(ctx context.Context, entry domain.JournalEntry) error
}

// LedgerReader defines read operations over transactions and journal entries
type LedgerReader interface {
	// FindTransactionByID retrieves a business transaction.
	FindTransactionByID(ctx context.Context, entityID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, newest first, with a
	// cursor token for the next page.
	ListTransactions(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error)

	// FindEntryByTransactionID retrieves the journal entry created for a
	// transaction, with its lines.
	FindEntryByTransactionID(ctx context.Context, transactionID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of journal entries (without lines), newest
	// first, with a cursor token for the next page.
	ListEntries(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindPostingsByEntryID retrieves the ledger postings of one entry.
	FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerPosting, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
