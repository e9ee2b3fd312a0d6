package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/fintally/fintally_backend/internal/middleware"
)

// defaultChart is the standard chart of accounts seeded for a new entity.
// Codes follow the usual 1xxx assets / 2xxx liabilities / 3xxx equity /
// 4xxx revenue / 5xxx-6xxx expenses convention.
var defaultChart = []struct {
	Code string
	Name string
	Type domain.AccountType
}{
	{"1000", "Cash", domain.Asset},
	{"1100", "Accounts Receivable", domain.Asset},
	{"1500", "Fixed Assets", domain.Asset},
	{"1510", "Accumulated Depreciation", domain.ContraAsset},
	{"2000", "Accounts Payable", domain.Liability},
	{"2100", "VAT Payable", domain.Liability},
	{"3000", "Owner's Equity", domain.Equity},
	{"4000", "Sales Revenue", domain.Revenue},
	{"4100", "Other Income", domain.Revenue},
	{"5000", "Cost of Goods Sold", domain.Expense},
	{"6000", "Operating Expenses", domain.Expense},
	{"6200", "Depreciation Expense", domain.Expense},
	{"6300", "Loss on Disposal", domain.Expense},
}

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		EntityID:  entityID,
		Code:      req.Code,
		Name:      req.Name,
		Type:      req.Type,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account code already exists", slog.String("entity_id", entityID), slog.String("code", req.Code))
		} else {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, entityID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, entityID)
}

// UpdateAccount renames an account and, while it has no ledger activity,
// allows changing its type. A type change on an account with postings would
// silently reclassify history, so it is rejected.
func (s *accountService) UpdateAccount(ctx context.Context, entityID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, entityID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil && *req.Type != account.Type {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.Type)
		}
		hasPostings, err := s.accountRepo.HasPostings(ctx, accountID)
		if err != nil {
			logger.Error("Failed to check account postings", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, err
		}
		if hasPostings {
			return nil, fmt.Errorf("%w: account %s has ledger postings, type cannot change", apperrors.ErrConflict, account.Code)
		}
		account.Type = *req.Type
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

// SeedDefaultChart creates the standard chart for an entity. Codes the entity
// already uses are left untouched, so seeding is safe to repeat.
func (s *accountService) SeedDefaultChart(ctx context.Context, entityID string, actorID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.ListAccounts(ctx, entityID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, acc := range existing {
		taken[acc.Code] = struct{}{}
	}

	now := time.Now()
	var toCreate []domain.Account
	for _, def := range defaultChart {
		if _, ok := taken[def.Code]; ok {
			continue
		}
		toCreate = append(toCreate, domain.Account{
			AccountID: uuid.NewString(),
			EntityID:  entityID,
			Code:      def.Code,
			Name:      def.Name,
			Type:      def.Type,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}

	if len(toCreate) == 0 {
		logger.Info("Default chart already seeded", slog.String("entity_id", entityID))
		return []domain.Account{}, nil
	}

	if err := s.accountRepo.SaveAccounts(ctx, toCreate); err != nil {
		logger.Error("Failed to seed default chart", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, err
	}

	logger.Info("Default chart seeded", slog.String("entity_id", entityID), slog.Int("accounts_created", len(toCreate)))
	return toCreate, nil
}
