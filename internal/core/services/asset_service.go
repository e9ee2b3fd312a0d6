package services

import (
	"context"
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
	"github.com/fintally/fintally_backend/internal/utils/depreciation"
)

// Transaction types the disposal flow posts through the mapping table.
const (
	disposalGainType = "asset_disposal_gain"
	disposalLossType = "asset_disposal_loss"
)

// assetService manages the fixed-asset register. Disposal outcomes are booked
// through the posting engine like any other transaction.
type assetService struct {
	assetRepo  portsrepo.AssetRepositoryFacade
	postingSvc portssvc.TransactionPosterSvc
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade, postingSvc portssvc.TransactionPosterSvc) portssvc.AssetSvcFacade {
	return &assetService{assetRepo: assetRepo, postingSvc: postingSvc}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) CreateAsset(ctx context.Context, entityID string, req dto.CreateAssetRequest, actorID string) (*domain.FixedAsset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Cost.IsPositive() {
		return nil, fmt.Errorf("%w: asset cost must be positive, got %s", apperrors.ErrValidation, req.Cost)
	}
	if !req.AnnualRatePct.IsPositive() || req.AnnualRatePct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: annual depreciation rate must be between 0 and 100, got %s", apperrors.ErrValidation, req.AnnualRatePct)
	}

	now := time.Now()
	asset := domain.FixedAsset{
		AssetID:       uuid.NewString(),
		EntityID:      entityID,
		Name:          req.Name,
		Cost:          req.Cost,
		AnnualRatePct: req.AnnualRatePct,
		PurchaseDate:  req.PurchaseDate,
		Status:        domain.AssetActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		logger.Error("Failed to save asset", slog.String("error", err.Error()), slog.String("asset_id", asset.AssetID))
		return nil, err
	}

	logger.Info("Asset registered", slog.String("asset_id", asset.AssetID), slog.String("name", asset.Name))
	return &asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, entityID string, assetID string) (*domain.FixedAsset, error) {
	return s.assetRepo.FindAssetByID(ctx, entityID, assetID)
}

func (s *assetService) ListAssets(ctx context.Context, entityID string) ([]domain.FixedAsset, error) {
	return s.assetRepo.ListAssets(ctx, entityID)
}

// DisposeAsset computes straight-line depreciation accrued to the disposal
// date, derives the gain or loss against the selling price, books that result
// through the posting engine and marks the asset DISPOSED.
//
// The posted transaction carries the deterministic ID "disposal-<assetID>",
// so a retried disposal replays the original entry instead of double-booking.
func (s *assetService) DisposeAsset(ctx context.Context, entityID string, assetID string, req dto.DisposeAssetRequest, actorID string) (*domain.DisposalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asset, err := s.assetRepo.FindAssetByID(ctx, entityID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetActive {
		return nil, fmt.Errorf("%w: asset %s is already disposed", apperrors.ErrConflict, assetID)
	}
	if req.DisposalDate.Before(asset.PurchaseDate) {
		return nil, fmt.Errorf("%w: disposal date precedes purchase date", apperrors.ErrValidation)
	}
	if req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: selling price cannot be negative, got %s", apperrors.ErrValidation, req.SellingPrice)
	}

	accrued := depreciation.AccruedDepreciation(asset.Cost, asset.AnnualRatePct, asset.PurchaseDate, req.DisposalDate)
	nbv := depreciation.NetBookValue(asset.Cost, accrued)
	profitLoss := depreciation.GainOrLoss(asset.Cost, accrued, req.SellingPrice)

	result := &domain.DisposalResult{
		AccruedDepreciation: accrued,
		NetBookValue:        nbv,
		ProfitLoss:          profitLoss,
	}

	// A sale exactly at book value has nothing to book.
	if !profitLoss.IsZero() {
		txnType := disposalGainType
		amount := profitLoss
		if profitLoss.IsNegative() {
			txnType = disposalLossType
			amount = profitLoss.Neg()
		}

		transactionID := "disposal-" + assetID
		posted, err := s.postingSvc.PostTransaction(ctx, entityID, dto.CreateTransactionRequest{
			TransactionID: &transactionID,
			Type:          txnType,
			Amount:        amount,
			Date:          req.DisposalDate,
			Description:   fmt.Sprintf("Disposal of %s", asset.Name),
			Category:      "asset_disposal",
			Metadata:      map[string]string{"assetID": assetID},
		}, actorID)
		if err != nil {
			logger.Error("Failed to post disposal result",
				slog.String("error", err.Error()),
				slog.String("asset_id", assetID),
				slog.String("transaction_type", txnType))
			return nil, err
		}
		result.JournalEntryID = posted.Entry.EntryID
		result.PostedTransactionID = posted.Transaction.TransactionID
	}

	now := time.Now()
	if err := s.assetRepo.MarkDisposed(ctx, entityID, assetID, req.DisposalDate, req.SellingPrice, actorID, now); err != nil {
		logger.Error("Failed to mark asset disposed", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		return nil, err
	}

	asset.Status = domain.AssetDisposed
	asset.DisposalDate = &req.DisposalDate
	asset.SellingPrice = &req.SellingPrice
	asset.LastUpdatedAt = now
	asset.LastUpdatedBy = actorID
	result.Asset = *asset

	logger.Info("Asset disposed",
		slog.String("asset_id", assetID),
		slog.String("net_book_value", nbv.String()),
		slog.String("profit_loss", profitLoss.String()))

	return result, nil
}
