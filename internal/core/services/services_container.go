package services

import (
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize the audit publisher first since the ledger depends on it
	container.Audit = NewAuditService(repos.AuditRepo)

	// Account numbers come from a dedicated generator so the account
	// service never embeds randomness of its own
	numberGenerator := NewAccountNumberGenerator(repos.AccountRepo)

	// Create the account lifecycle service with its dependencies
	accountService := NewAccountService(
		repos.AccountRepo,
		WithUserReader(repos.UserRepo),
		WithAccountNumberGenerator(numberGenerator),
		WithSortCode(cfg.BankSortCode),
	)

	// Transaction processing shares the account repository for ownership checks
	transactionService := NewTransactionService(repos.TransactionRepo, repos.AccountRepo)

	// The ledger facade is the single entry point handlers talk to
	container.Ledger = NewLedgerService(accountService, transactionService, container.Audit)

	// Initialize the remaining services
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Reporting = NewReportingService(repos.AccountRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.UserSvcFacade     = (*userService)(nil)
	_ portssvc.AuditPublisherSvc = (*auditService)(nil)
)
