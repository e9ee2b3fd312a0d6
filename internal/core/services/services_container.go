package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Mapping = NewMappingService(repos.MappingRepo, repos.AccountRepo)

	// The posting engine is built before the asset service because disposals
	// book their gain or loss through it.
	container.Posting = NewPostingService(repos.LedgerRepo, repos.AccountRepo, repos.MappingRepo)

	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Tax = NewTaxService(repos.TaxConfigRepo, repos.ReportingRepo, TaxDefaults{
		VATRate:                 decimal.NewFromFloat(cfg.DefaultVATRate),
		CorpTaxRate:             decimal.NewFromFloat(cfg.DefaultCorpTaxRate),
		DepreciationExpenseCode: cfg.DepreciationExpenseCode,
	})
	container.Asset = NewAssetService(repos.AssetRepo, container.Posting)

	return container
}
