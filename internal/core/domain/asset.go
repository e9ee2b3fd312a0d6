package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus indicates whether a fixed asset is still on the books.
type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetDisposed AssetStatus = "DISPOSED"
)

// FixedAsset is a depreciable asset tracked per entity. Depreciation is
// straight-line at AnnualRatePct of cost per year, accrued in whole months.
type FixedAsset struct {
	AssetID       string           `json:"assetID"`
	EntityID      string           `json:"entityID"`
	Name          string           `json:"name"`
	Cost          decimal.Decimal  `json:"cost"`
	AnnualRatePct decimal.Decimal  `json:"annualRatePct"`
	PurchaseDate  time.Time        `json:"purchaseDate"`
	Status        AssetStatus      `json:"status"`
	DisposalDate  *time.Time       `json:"disposalDate,omitempty"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice,omitempty"`
	AuditFields
}

// DisposalResult summarises an asset disposal: accrued depreciation to the
// disposal date, net book value, and the gain (positive) or loss (negative).
type DisposalResult struct {
	Asset               FixedAsset      `json:"asset"`
	AccruedDepreciation decimal.Decimal `json:"accruedDepreciation"`
	NetBookValue        decimal.Decimal `json:"netBookValue"`
	ProfitLoss          decimal.Decimal `json:"profitLoss"`
	JournalEntryID      string          `json:"journalEntryID,omitempty"`
	PostedTransactionID string          `json:"postedTransactionID,omitempty"`
}
