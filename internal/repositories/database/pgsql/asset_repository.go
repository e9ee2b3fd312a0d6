package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for the fixed-asset register.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, entity_id, name, cost, annual_rate_pct, purchase_date, status, disposal_date, selling_price, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (*domain.FixedAsset, error) {
	var a domain.FixedAsset
	err := row.Scan(
		&a.AssetID,
		&a.EntityID,
		&a.Name,
		&a.Cost,
		&a.AnnualRatePct,
		&a.PurchaseDate,
		&a.Status,
		&a.DisposalDate,
		&a.SellingPrice,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	query := `
		INSERT INTO fixed_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID,
		asset.EntityID,
		asset.Name,
		asset.Cost,
		asset.AnnualRatePct,
		asset.PurchaseDate,
		asset.Status,
		asset.DisposalDate,
		asset.SellingPrice,
		asset.CreatedAt,
		asset.CreatedBy,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert asset "+asset.AssetID, err)
	}
	return nil
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, entityID, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE entity_id = $1 AND asset_id = $2;`
	asset, err := scanAsset(r.Pool.QueryRow(ctx, query, entityID, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find asset "+assetID, err)
	}
	return asset, nil
}

func (r *PgxAssetRepository) ListAssets(ctx context.Context, entityID string) ([]domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE entity_id = $1 ORDER BY purchase_date, asset_id;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets for entity "+entityID, err)
	}
	defer rows.Close()

	assets := []domain.FixedAsset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset row", err)
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset rows", err)
	}
	return assets, nil
}

// MarkDisposed flips an asset to DISPOSED, recording disposal date and selling
// price. The status guard in the UPDATE makes a second disposal a conflict
// rather than a silent overwrite.
func (r *PgxAssetRepository) MarkDisposed(ctx context.Context, entityID, assetID string, disposalDate time.Time, sellingPrice decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fixed_assets
		SET status = 'DISPOSED',
		    disposal_date = $3,
		    selling_price = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entity_id = $1 AND asset_id = $2 AND status = 'ACTIVE';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entityID, assetID, disposalDate, sellingPrice, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark asset disposed "+assetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var status domain.AssetStatus
		err := r.Pool.QueryRow(ctx, `SELECT status FROM fixed_assets WHERE entity_id = $1 AND asset_id = $2;`, entityID, assetID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("asset " + assetID + " not found")
			}
			return apperrors.NewAppError(500, "failed to check status of asset "+assetID, err)
		}
		return apperrors.NewAppError(409, "asset "+assetID+" is already "+string(status), apperrors.ErrConflict)
	}
	return nil
}
