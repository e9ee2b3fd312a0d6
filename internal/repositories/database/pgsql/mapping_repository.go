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

type PgxMappingRepository struct {
	BaseRepository
}

// newPgxMappingRepository creates a new repository for the transaction-type
// mapping table. Global default mappings are stored with entity_id = ''.
func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

const mappingColumns = `mapping_id, entity_id, transaction_type, debit_account_code, credit_account_code, description, created_at, created_by, last_updated_at, last_updated_by`

func scanMapping(row pgx.Row) (*domain.TransactionTypeMapping, error) {
	var m domain.TransactionTypeMapping
	err := row.Scan(
		&m.MappingID,
		&m.EntityID,
		&m.TransactionType,
		&m.DebitAccountCode,
		&m.CreditAccountCode,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ResolveMapping returns the effective mapping for a transaction type. The
// entity's own row wins over the global default ('' entity) via the ORDER BY.
func (r *PgxMappingRepository) ResolveMapping(ctx context.Context, entityID, transactionType string) (*domain.TransactionTypeMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM transaction_type_mappings
		WHERE transaction_type = $2 AND entity_id IN ($1, '')
		ORDER BY entity_id DESC
		LIMIT 1;
	`
	m, err := scanMapping(r.Pool.QueryRow(ctx, query, entityID, transactionType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMappingNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to resolve mapping for type "+transactionType, err)
	}
	return m, nil
}

// ListMappings returns the entity's mappings plus the global defaults the
// entity has not overridden.
func (r *PgxMappingRepository) ListMappings(ctx context.Context, entityID string) ([]domain.TransactionTypeMapping, error) {
	query := `
		SELECT DISTINCT ON (transaction_type) ` + mappingColumns + `
		FROM transaction_type_mappings
		WHERE entity_id IN ($1, '')
		ORDER BY transaction_type, entity_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mappings for entity "+entityID, err)
	}
	defer rows.Close()

	mappings := []domain.TransactionTypeMapping{}
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mapping row", err)
		}
		mappings = append(mappings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mapping rows", err)
	}
	return mappings, nil
}

func (r *PgxMappingRepository) UpsertMapping(ctx context.Context, mapping domain.TransactionTypeMapping) error {
	query := `
		INSERT INTO transaction_type_mappings (` + mappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (entity_id, transaction_type) DO UPDATE
		SET debit_account_code = EXCLUDED.debit_account_code,
		    credit_account_code = EXCLUDED.credit_account_code,
		    description = EXCLUDED.description,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		mapping.MappingID,
		mapping.EntityID,
		mapping.TransactionType,
		mapping.DebitAccountCode,
		mapping.CreditAccountCode,
		mapping.Description,
		mapping.CreatedAt,
		mapping.CreatedBy,
		mapping.LastUpdatedAt,
		mapping.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert mapping for type "+mapping.TransactionType, err)
	}
	return nil
}
