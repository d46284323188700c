package pgsql

import (
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo, sequenceRepo)
	batchRepo := newPgxBatchRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		AccountRepo:     accountRepo,
		SequenceRepo:    sequenceRepo,
		BatchRepo:       batchRepo,
		ReportingRepo:   reportingRepo,
	}
}
