package pgsql

import (
	"context"
	"errors"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaxConfigRepository struct {
	BaseRepository
}

// newPgxTaxConfigRepository creates a new repository for per-entity tax
// configuration. Bracket schedules live in their own table keyed by position.
func newPgxTaxConfigRepository(pool *pgxpool.Pool) portsrepo.TaxConfigRepository {
	return &PgxTaxConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxConfigRepository = (*PgxTaxConfigRepository)(nil)

func (r *PgxTaxConfigRepository) FindByEntityID(ctx context.Context, entityID string) (*domain.TaxConfig, error) {
	query := `
		SELECT entity_id, vat_rate, depreciation_account_codes, created_at, created_by, last_updated_at, last_updated_by
		FROM tax_configs
		WHERE entity_id = $1;
	`
	var cfg domain.TaxConfig
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(
		&cfg.EntityID,
		&cfg.VATRate,
		&cfg.DepreciationAccountCodes,
		&cfg.CreatedAt,
		&cfg.CreatedBy,
		&cfg.LastUpdatedAt,
		&cfg.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tax config for entity "+entityID, err)
	}

	bracketQuery := `
		SELECT threshold, rate
		FROM tax_brackets
		WHERE entity_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, bracketQuery, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax brackets for entity "+entityID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b domain.TaxBracket
		if err := rows.Scan(&b.Threshold, &b.Rate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax bracket row", err)
		}
		cfg.CorpTaxBrackets = append(cfg.CorpTaxBrackets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax bracket rows", err)
	}

	return &cfg, nil
}

// UpsertConfig replaces the entity's config row and its full bracket schedule
// in one transaction.
func (r *PgxTaxConfigRepository) UpsertConfig(ctx context.Context, config domain.TaxConfig) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO tax_configs (entity_id, vat_rate, depreciation_account_codes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (entity_id) DO UPDATE
		SET vat_rate = EXCLUDED.vat_rate,
		    depreciation_account_codes = EXCLUDED.depreciation_account_codes,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, query,
		config.EntityID,
		config.VATRate,
		config.DepreciationAccountCodes,
		config.CreatedAt,
		config.CreatedBy,
		config.LastUpdatedAt,
		config.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert tax config for entity "+config.EntityID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tax_brackets WHERE entity_id = $1;`, config.EntityID); err != nil {
		return apperrors.NewAppError(500, "failed to clear tax brackets for entity "+config.EntityID, err)
	}

	batch := &pgx.Batch{}
	for i, b := range config.CorpTaxBrackets {
		batch.Queue(
			`INSERT INTO tax_brackets (entity_id, position, threshold, rate) VALUES ($1, $2, $3, $4);`,
			config.EntityID, i, b.Threshold, b.Rate,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert tax brackets for entity "+config.EntityID, err)
	}

	return r.Commit(ctx, tx)
}
