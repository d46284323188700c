package services

import (
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/platform/config"
)

// NewServiceContainer wires the services with their repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Validation = NewValidationService(repos.AccountRepo, cfg.LargeAmountThreshold)
	container.Sequence = NewSequenceService(repos.SequenceRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, container.Validation)
	container.Batch = NewBatchService(repos.BatchRepo, repos.TransactionRepo, container.Transaction, container.Sequence, cfg.BatchWorkers)
	container.Reconciliation = NewReconciliationService(repos.TransactionRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)

	return container
}
