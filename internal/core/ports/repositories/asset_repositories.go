package repositories

import (
	"context"
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetRepositoryFacade persists the fixed-asset register.
type AssetRepositoryFacade interface {
	// SaveAsset persists a new fixed asset.
	SaveAsset(ctx context.Context, asset domain.FixedAsset) error

	// FindAssetByID retrieves an asset scoped to an entity.
	FindAssetByID(ctx context.Context, entityID, assetID string) (*domain.FixedAsset, error)

	// ListAssets retrieves all assets for an entity ordered by purchase date.
	ListAssets(ctx context.Context, entityID string) ([]domain.FixedAsset, error)

	// MarkDisposed records the disposal date and selling price and flips the
	// asset to DISPOSED. Guards on status = ACTIVE; an already disposed asset
	// yields apperrors.ErrConflict.
	MarkDisposed(ctx context.Context, entityID, assetID string, disposalDate time.Time, sellingPrice decimal.Decimal, updatedBy string, updatedAt time.Time) error
}
