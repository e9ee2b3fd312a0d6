package dto

import (
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest defines the data needed to register a fixed asset.
type CreateAssetRequest struct {
	Name          string          `json:"name" binding:"required"`
	Cost          decimal.Decimal `json:"cost" binding:"required,dpositive"`
	AnnualRatePct decimal.Decimal `json:"annualRatePct" binding:"required,dpositive"`
	PurchaseDate  time.Time       `json:"purchaseDate" binding:"required"`
}

// DisposeAssetRequest defines the data needed to dispose of an asset.
type DisposeAssetRequest struct {
	DisposalDate time.Time       `json:"disposalDate" binding:"required"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// AssetResponse defines the data returned for a fixed asset.
type AssetResponse struct {
	AssetID       string             `json:"assetID"`
	EntityID      string             `json:"entityID"`
	Name          string             `json:"name"`
	Cost          decimal.Decimal    `json:"cost"`
	AnnualRatePct decimal.Decimal    `json:"annualRatePct"`
	PurchaseDate  time.Time          `json:"purchaseDate"`
	Status        domain.AssetStatus `json:"status"`
	DisposalDate  *time.Time         `json:"disposalDate,omitempty"`
	SellingPrice  *decimal.Decimal   `json:"sellingPrice,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAssetResponse converts a domain.FixedAsset to AssetResponse DTO.
func ToAssetResponse(asset *domain.FixedAsset) AssetResponse {
	return AssetResponse{
		AssetID:       asset.AssetID,
		EntityID:      asset.EntityID,
		Name:          asset.Name,
		Cost:          asset.Cost,
		AnnualRatePct: asset.AnnualRatePct,
		PurchaseDate:  asset.PurchaseDate,
		Status:        asset.Status,
		DisposalDate:  asset.DisposalDate,
		SellingPrice:  asset.SellingPrice,
		CreatedAt:     asset.CreatedAt,
		CreatedBy:     asset.CreatedBy,
		LastUpdatedAt: asset.LastUpdatedAt,
		LastUpdatedBy: asset.LastUpdatedBy,
	}
}

// ListAssetsResponse wraps the list of an entity's fixed assets.
type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// ToListAssetsResponse converts a slice of assets to the list DTO.
func ToListAssetsResponse(assets []domain.FixedAsset) ListAssetsResponse {
	res := make([]AssetResponse, len(assets))
	for i, a := range assets {
		res[i] = ToAssetResponse(&a)
	}
	return ListAssetsResponse{Assets: res}
}

// DisposalResponse reports the financial outcome of an asset disposal.
type DisposalResponse struct {
	Asset               AssetResponse   `json:"asset"`
	AccruedDepreciation decimal.Decimal `json:"accruedDepreciation"`
	NetBookValue        decimal.Decimal `json:"netBookValue"`
	ProfitLoss          decimal.Decimal `json:"profitLoss"`
	JournalEntryID      string          `json:"journalEntryID,omitempty"`
	PostedTransactionID string          `json:"postedTransactionID,omitempty"`
}

// ToDisposalResponse converts a domain.DisposalResult to its DTO.
func ToDisposalResponse(result *domain.DisposalResult) DisposalResponse {
	return DisposalResponse{
		Asset:               ToAssetResponse(&result.Asset),
		AccruedDepreciation: result.AccruedDepreciation,
		NetBookValue:        result.NetBookValue,
		ProfitLoss:          result.ProfitLoss,
		JournalEntryID:      result.JournalEntryID,
		PostedTransactionID: result.PostedTransactionID,
	}
}
