package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	"github.com/fintally/fintally_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for transactions, journal
// entries, lines and ledger postings.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, entity_id, transaction_id, entry_date, status, memo, amount, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, description, debit, credit)
	VALUES ($1, $2, $3, $4, $5, $6);
`

const insertPostingQuery = `
	INSERT INTO ledger_postings (posting_id, entry_id, account_id, entity_id, posting_date, debit, credit)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// queueEntryInsert adds the journal entry insert to the batch.
func queueEntryInsert(batch *pgx.Batch, entry domain.JournalEntry) {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch.Queue(query,
		entry.EntryID,
		entry.EntityID,
		entry.TransactionID,
		entry.EntryDate,
		entry.Status,
		entry.Memo,
		entry.Amount,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
}

// queueLineInserts adds the entry's line inserts to the batch.
func queueLineInserts(batch *pgx.Batch, entry domain.JournalEntry) {
	for _, line := range entry.Lines {
		batch.Queue(insertLineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			line.Description,
			line.Debit,
			line.Credit,
		)
	}
}

// queuePostingInserts expands the entry's lines into ledger postings and adds
// their inserts to the batch. Only called for POSTED entries.
func queuePostingInserts(batch *pgx.Batch, entry domain.JournalEntry) {
	for _, line := range entry.Lines {
		batch.Queue(insertPostingQuery,
			uuid.NewString(),
			entry.EntryID,
			line.AccountID,
			entry.EntityID,
			entry.EntryDate,
			line.Debit,
			line.Credit,
		)
	}
}

// CreateTransactionWithEntry persists a business transaction, its posted
// journal entry, the entry's lines and the derived ledger postings in one
// database transaction. The unique index on journal_entries.transaction_id
// turns a replayed transaction ID into apperrors.ErrDuplicate.
func (r *PgxLedgerRepository) CreateTransactionWithEntry(ctx context.Context, txn domain.Transaction, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	txnQuery := `
		INSERT INTO transactions (transaction_id, entity_id, transaction_type, amount, transaction_date, description, category, metadata, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.EntityID,
		txn.Type,
		txn.Amount,
		txn.Date,
		txn.Description,
		txn.Category,
		txn.Metadata,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "transaction "+txn.TransactionID+" already posted", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	queueEntryInsert(batch, entry)
	queueLineInserts(batch, entry)
	queuePostingInserts(batch, entry)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "transaction "+txn.TransactionID+" already posted", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to execute posting batch for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveEntry persists a manual journal entry with its lines. POSTED entries
// also get their ledger postings in the same transaction.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueEntryInsert(batch, entry)
	queueLineInserts(batch, entry)
	if entry.Status == domain.Posted {
		queuePostingInserts(batch, entry)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute save batch for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntry replaces a draft entry's fields and lines. The status guard in
// the UPDATE makes posted entries immutable at the database level.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET entry_date = $3,
		    memo = $4,
		    amount = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE entity_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		entry.EntityID,
		entry.EntryID,
		entry.EntryDate,
		entry.Memo,
		entry.Amount,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftGuardError(ctx, entry.EntityID, entry.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, entry)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a draft entry and its lines.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entityID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entity_id = $1 AND entry_id = $2 AND status = 'DRAFT';`, entityID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftGuardError(ctx, entityID, entryID)
	}

	return r.Commit(ctx, tx)
}

// PostEntry flips a draft entry to POSTED and writes its ledger postings in
// one transaction.
func (r *PgxLedgerRepository) PostEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entity_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query, entry.EntityID, entry.EntryID, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post entry "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftGuardError(ctx, entry.EntityID, entry.EntryID)
	}

	batch := &pgx.Batch{}
	queuePostingInserts(batch, entry)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert postings for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// draftGuardError distinguishes "entry does not exist" from "entry exists but
// is no longer a draft" after a guarded write touched zero rows.
func (r *PgxLedgerRepository) draftGuardError(ctx context.Context, entityID, entryID string) error {
	var status domain.EntryStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entity_id = $1 AND entry_id = $2;`, entityID, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("journal entry " + entryID + " not found")
		}
		return apperrors.NewAppError(500, "failed to check status of entry "+entryID, err)
	}
	return apperrors.NewAppError(409, "journal entry "+entryID+" is "+string(status), apperrors.ErrImmutableEntry)
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, entityID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, entity_id, transaction_type, amount, transaction_date, description, category, metadata, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE entity_id = $1 AND transaction_id = $2;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, entityID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	return txn, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.EntityID,
		&t.Type,
		&t.Amount,
		&t.Date,
		&t.Description,
		&t.Category,
		&t.Metadata,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions retrieves a page of transactions using keyset pagination
// over (transaction_date, created_at), newest first.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, entity_id, transaction_type, amount, transaction_date, description, category, metadata, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE entity_id = $1
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{entityID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for entity "+entityID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return txns, token, nil
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.EntityID,
		&e.TransactionID,
		&e.EntryDate,
		&e.Status,
		&e.Memo,
		&e.Amount,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entity_id = $1 AND entry_id = $2;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entityID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryID, err)
	}

	lines, err := r.findLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (r *PgxLedgerRepository) FindEntryByTransactionID(ctx context.Context, transactionID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE transaction_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry for transaction "+transactionID, err)
	}

	lines, err := r.findLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (r *PgxLedgerRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, description, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Description, &l.Debit, &l.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return lines, nil
}

// ListEntries retrieves a page of journal entries without their lines, using
// keyset pagination over (entry_date, created_at), newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entity_id = $1`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{entityID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for entity "+entityID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

func (r *PgxLedgerRepository) FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerPosting, error) {
	query := `
		SELECT posting_id, entry_id, account_id, entity_id, posting_date, debit, credit
		FROM ledger_postings
		WHERE entry_id = $1
		ORDER BY posting_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings for entry "+entryID, err)
	}
	defer rows.Close()

	postings := []domain.LedgerPosting{}
	for rows.Next() {
		var p domain.LedgerPosting
		if err := rows.Scan(&p.PostingID, &p.EntryID, &p.AccountID, &p.EntityID, &p.PostingDate, &p.Debit, &p.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting row for entry "+entryID, err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rows for entry "+entryID, err)
	}
	return postings, nil
}
