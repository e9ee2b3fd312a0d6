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

// mappingService manages the transaction-type mapping table.
type mappingService struct {
	mappingRepo portsrepo.MappingRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewMappingService creates a new mapping service.
func NewMappingService(mappingRepo portsrepo.MappingRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.MappingSvcFacade {
	return &mappingService{mappingRepo: mappingRepo, accountRepo: accountRepo}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

func (s *mappingService) ResolveMapping(ctx context.Context, entityID string, transactionType string) (*domain.TransactionTypeMapping, error) {
	return s.mappingRepo.ResolveMapping(ctx, entityID, transactionType)
}

func (s *mappingService) ListMappings(ctx context.Context, entityID string) ([]domain.TransactionTypeMapping, error) {
	return s.mappingRepo.ListMappings(ctx, entityID)
}

// UpsertMapping creates or replaces the entity's mapping for a transaction
// type. Both account codes must already exist in the entity's chart so a
// mapping can never point posting at a missing account.
func (s *mappingService) UpsertMapping(ctx context.Context, entityID string, req dto.UpsertMappingRequest, actorID string) (*domain.TransactionTypeMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DebitAccountCode == req.CreditAccountCode {
		return nil, fmt.Errorf("%w: debit and credit account codes must differ", apperrors.ErrValidation)
	}

	for _, code := range []string{req.DebitAccountCode, req.CreditAccountCode} {
		if _, err := s.accountRepo.FindAccountByCode(ctx, entityID, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account code %s not found for entity", apperrors.ErrValidation, code)
			}
			logger.Error("Failed to check mapping account code", slog.String("error", err.Error()), slog.String("code", code))
			return nil, err
		}
	}

	now := time.Now()
	mapping := domain.TransactionTypeMapping{
		MappingID:         uuid.NewString(),
		EntityID:          entityID,
		TransactionType:   req.TransactionType,
		DebitAccountCode:  req.DebitAccountCode,
		CreditAccountCode: req.CreditAccountCode,
		Description:       req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.mappingRepo.UpsertMapping(ctx, mapping); err != nil {
		logger.Error("Failed to upsert mapping", slog.String("error", err.Error()), slog.String("transaction_type", req.TransactionType))
		return nil, err
	}

	logger.Info("Mapping upserted", slog.String("entity_id", entityID), slog.String("transaction_type", req.TransactionType))
	return &mapping, nil
}
