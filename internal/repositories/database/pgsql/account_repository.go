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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, entity_id, code, name, account_type, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.EntityID,
		&acc.Code,
		&acc.Name,
		&acc.Type,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.EntityID,
		account.Code,
		account.Name,
		account.Type,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "account code "+account.Code+" already exists for entity", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

// SaveAccounts inserts a batch of accounts in one transaction, skipping codes
// the entity already has. Used by chart seeding.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (entity_id, code) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(query,
			account.AccountID,
			account.EntityID,
			account.Code,
			account.Name,
			account.Type,
			account.CreatedAt,
			account.CreatedBy,
			account.LastUpdatedAt,
			account.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute account batch insert", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, entityID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	return acc, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, entityID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND code = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, entityID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}
	return acc, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, entityID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for entity "+entityID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ledger_postings WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check postings for account "+accountID, err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3,
		    account_type = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entity_id = $1 AND account_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.EntityID,
		account.AccountID,
		account.Name,
		account.Type,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + account.AccountID + " not found for update")
	}
	return nil
}
