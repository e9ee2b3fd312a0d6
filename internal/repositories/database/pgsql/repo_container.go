package pgsql

import (
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	mappingRepo := newPgxMappingRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	taxConfigRepo := newPgxTaxConfigRepository(dbPool)
	assetRepo := newPgxAssetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		MappingRepo:   mappingRepo,
		LedgerRepo:    ledgerRepo,
		ReportingRepo: reportingRepo,
		TaxConfigRepo: taxConfigRepo,
		AssetRepo:     assetRepo,
	}
}
