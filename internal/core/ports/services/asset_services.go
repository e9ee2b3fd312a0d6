package services

import (
	"context"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/dto"
)

// AssetSvcFacade manages the fixed-asset register and its depreciation math.
type AssetSvcFacade interface {
	// CreateAsset registers a new depreciable asset.
	CreateAsset(ctx context.Context, entityID string, req dto.CreateAssetRequest, actorID string) (*domain.FixedAsset, error)

	// GetAsset retrieves an asset by ID.
	GetAsset(ctx context.Context, entityID string, assetID string) (*domain.FixedAsset, error)

	// ListAssets retrieves the entity's assets ordered by purchase date.
	ListAssets(ctx context.Context, entityID string) ([]domain.FixedAsset, error)

	// DisposeAsset computes accrued depreciation and gain or loss at the
	// disposal date, posts the result through the posting engine and marks the
	// asset DISPOSED. Disposing an already disposed asset fails with a conflict.
	DisposeAsset(ctx context.Context, entityID string, assetID string, req dto.DisposeAssetRequest, actorID string) (*domain.DisposalResult, error)
}
