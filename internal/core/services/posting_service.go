package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/fintally/fintally_backend/internal/middleware"
)

// balanceTolerance is the rounding epsilon allowed between a manual entry's
// debit and credit totals.
var balanceTolerance = decimal.NewFromFloat(0.01)

// postingService is the ledger posting engine. The automatic path turns a
// business transaction into a balanced two-line entry via the mapping table;
// the manual path manages draft entries with arbitrary balanced lines.
type postingService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
	mappingRepo portsrepo.MappingReader
}

// NewPostingService creates a new posting service.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, mappingRepo portsrepo.MappingReader) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		mappingRepo: mappingRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction resolves the mapping for the transaction type, builds the
// balanced journal entry and persists transaction, entry, lines and postings
// in one database transaction.
//
// Posting is idempotent on transaction ID: a replay of an already posted ID
// returns the original transaction and entry with Created=false.
func (s *postingService) PostTransaction(ctx context.Context, entityID string, req dto.CreateTransactionRequest, actorID string) (*domain.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}

	transactionID := uuid.NewString()
	if req.TransactionID != nil && *req.TransactionID != "" {
		transactionID = *req.TransactionID
	}

	mapping, err := s.mappingRepo.ResolveMapping(ctx, entityID, req.Type)
	if err != nil {
		if errors.Is(err, apperrors.ErrMappingNotFound) {
			// Setup error: the caller posted a type nobody has mapped yet.
			// This must surface loudly, never be defaulted around.
			logger.Error("No mapping for transaction type",
				slog.String("entity_id", entityID),
				slog.String("transaction_type", req.Type))
		}
		return nil, err
	}

	debitAccount, err := s.resolveMappedAccount(ctx, entityID, mapping.DebitAccountCode)
	if err != nil {
		return nil, err
	}
	creditAccount, err := s.resolveMappedAccount(ctx, entityID, mapping.CreditAccountCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		EntityID:      entityID,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   req.Description,
		Category:      req.Category,
		Metadata:      req.Metadata,
		AuditFields:   audit,
	}

	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:       entryID,
		EntityID:      entityID,
		TransactionID: &transactionID,
		EntryDate:     req.Date,
		Status:        domain.Posted,
		Memo:          req.Description,
		Amount:        req.Amount,
		Lines: []domain.JournalLine{
			{
				LineID:      uuid.NewString(),
				EntryID:     entryID,
				AccountID:   debitAccount.AccountID,
				Description: req.Description,
				Debit:       req.Amount,
				Credit:      decimal.Zero,
			},
			{
				LineID:      uuid.NewString(),
				EntryID:     entryID,
				AccountID:   creditAccount.AccountID,
				Description: req.Description,
				Debit:       decimal.Zero,
				Credit:      req.Amount,
			},
		},
		AuditFields: audit,
	}

	if err := s.ledgerRepo.CreateTransactionWithEntry(ctx, txn, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.replayExistingPosting(ctx, entityID, transactionID, *debitAccount, *creditAccount)
		}
		logger.Error("Failed to persist transaction posting", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", transactionID),
		slog.String("entry_id", entryID),
		slog.String("type", req.Type),
		slog.String("amount", req.Amount.String()))

	return &domain.PostingResult{
		Transaction:   txn,
		Entry:         entry,
		DebitAccount:  *debitAccount,
		CreditAccount: *creditAccount,
		Created:       true,
	}, nil
}

// resolveMappedAccount looks up a mapping's account code in the entity's
// chart. A missing account here means the mapping points at nothing, which is
// a configuration error distinct from a plain not-found.
func (s *postingService) resolveMappedAccount(ctx context.Context, entityID, code string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, entityID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Mapped account code missing from chart",
				slog.String("entity_id", entityID),
				slog.String("code", code))
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrAccountNotConfigured, code)
		}
		return nil, err
	}
	return account, nil
}

// replayExistingPosting serves an idempotent retry: the transaction ID was
// already posted, so return what the first attempt produced.
func (s *postingService) replayExistingPosting(ctx context.Context, entityID, transactionID string, debitAccount, creditAccount domain.Account) (*domain.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ledgerRepo.FindTransactionByID(ctx, entityID, transactionID)
	if err != nil {
		logger.Error("Duplicate posting but original transaction missing", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("%w: transaction %s posted but not readable", apperrors.ErrConsistency, transactionID)
	}
	entry, err := s.ledgerRepo.FindEntryByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Duplicate posting but original entry missing", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("%w: transaction %s posted but entry not readable", apperrors.ErrConsistency, transactionID)
	}

	logger.Info("Transaction already posted, returning existing entry",
		slog.String("transaction_id", transactionID),
		slog.String("entry_id", entry.EntryID))

	return &domain.PostingResult{
		Transaction:   *txn,
		Entry:         *entry,
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
		Created:       false,
	}, nil
}

func (s *postingService) GetTransaction(ctx context.Context, entityID string, transactionID string) (*domain.Transaction, error) {
	return s.ledgerRepo.FindTransactionByID(ctx, entityID, transactionID)
}

func (s *postingService) ListTransactions(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.ledgerRepo.ListTransactions(ctx, entityID, limit, nextToken)
}

// CreateEntry creates a manual journal entry. With req.Post set the entry is
// balance-checked and saved directly in POSTED status, otherwise it starts as
// an editable draft.
func (s *postingService) CreateEntry(ctx context.Context, entityID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryID := uuid.NewString()
	lines, amount, err := s.buildLines(ctx, entityID, entryID, req.Lines)
	if err != nil {
		return nil, err
	}

	status := domain.Draft
	if req.Post {
		if err := checkBalanced(lines); err != nil {
			return nil, err
		}
		status = domain.Posted
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:   entryID,
		EntityID:  entityID,
		EntryDate: req.EntryDate,
		Status:    status,
		Memo:      req.Memo,
		Lines:     lines,
		Amount:    amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.String("status", string(status)))
	return &entry, nil
}

func (s *postingService) GetEntry(ctx context.Context, entityID string, entryID string) (*domain.JournalEntry, error) {
	return s.ledgerRepo.FindEntryByID(ctx, entityID, entryID)
}

func (s *postingService) ListEntries(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.ledgerRepo.ListEntries(ctx, entityID, limit, nextToken)
}

// UpdateEntry replaces fields of a draft entry. Posted entries are immutable.
func (s *postingService) UpdateEntry(ctx context.Context, entityID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Memo != nil {
		entry.Memo = *req.Memo
	}
	if req.Lines != nil {
		lines, amount, err := s.buildLines(ctx, entityID, entryID, *req.Lines)
		if err != nil {
			return nil, err
		}
		entry.Lines = lines
		entry.Amount = amount
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorID

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes a draft entry. Posted entries are immutable.
func (s *postingService) DeleteEntry(ctx context.Context, entityID string, entryID string) error {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entityID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}
	return s.ledgerRepo.DeleteEntry(ctx, entityID, entryID)
}

// PostEntry balance-checks a draft entry and flips it to POSTED, writing the
// ledger postings atomically.
func (s *postingService) PostEntry(ctx context.Context, entityID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}
	if err := checkBalanced(entry.Lines); err != nil {
		return nil, err
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorID

	if err := s.ledgerRepo.PostEntry(ctx, *entry); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	return entry, nil
}

// buildLines validates and converts requested lines into domain lines,
// checking that every referenced account exists in the entity's chart, that
// each line has exactly one non-negative side set, and that at least two
// distinct accounts are touched. Returns the lines and the debit-side total.
func (s *postingService) buildLines(ctx context.Context, entityID, entryID string, reqLines []dto.CreateEntryLineRequest) ([]domain.JournalLine, decimal.Decimal, error) {
	if len(reqLines) < 2 {
		return nil, decimal.Zero, fmt.Errorf("%w: a journal entry needs at least two lines", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, len(reqLines))
	seen := make(map[string]struct{}, len(reqLines))
	for _, l := range reqLines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			accountIDs = append(accountIDs, l.AccountID)
		}
	}
	if len(accountIDs) < 2 {
		return nil, decimal.Zero, fmt.Errorf("%w: a journal entry must touch at least two accounts", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entityID, accountIDs)
	if err != nil {
		return nil, decimal.Zero, err
	}

	lines := make([]domain.JournalLine, 0, len(reqLines))
	debitTotal := decimal.Zero
	for i, l := range reqLines {
		if _, ok := accounts[l.AccountID]; !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: account %s not found for entity", apperrors.ErrValidation, l.AccountID)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if debitSet == creditSet {
			return nil, decimal.Zero, fmt.Errorf("%w: line %d must set exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}
		debitTotal = debitTotal.Add(l.Debit)
		lines = append(lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}

	return lines, debitTotal, nil
}

// checkBalanced verifies debit and credit totals agree within the rounding
// tolerance.
func checkBalanced(lines []domain.JournalLine) error {
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, l := range lines {
		debitTotal = debitTotal.Add(l.Debit)
		creditTotal = creditTotal.Add(l.Credit)
	}
	if debitTotal.Sub(creditTotal).Abs().GreaterThan(balanceTolerance) {
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedEntry, debitTotal, creditTotal)
	}
	return nil
}
