package services

import (
	"context"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/finbooks/ledger-engine/internal/dto"
)

// BatchSvcFacade accepts groups of transaction requests and processes them
// asynchronously through the lifecycle manager.
type BatchSvcFacade interface {
	// CreateBatch persists a Pending batch record, kicks off background
	// processing and returns immediately.
	CreateBatch(ctx context.Context, companyID string, req dto.CreateBatchRequest, creatorUserID string) (*domain.BatchTransaction, error)

	// GetBatch returns the batch record along with the transactions it
	// created so far.
	GetBatch(ctx context.Context, companyID, batchID string) (*domain.BatchTransaction, []domain.Transaction, error)

	GetBatchStatus(ctx context.Context, companyID, batchID string) (domain.BatchStatus, error)

	// CancelBatch sets the cooperative cancel flag; processing stops before
	// the next unprocessed item.
	CancelBatch(ctx context.Context, companyID, batchID string) error
}

// ReconciliationSvcFacade proposes and commits statement matches.
type ReconciliationSvcFacade interface {
	// FindMatches proposes unreconciled transactions on the account within
	// a +/-30 day window of the statement date, filtered by tolerance.
	FindMatches(ctx context.Context, companyID string, params dto.FindMatchesParams) ([]domain.ReconciliationMatch, error)

	// Reconcile bulk-marks the named transactions reconciled. Re-applying
	// to already-reconciled rows is a no-op, not an error.
	Reconcile(ctx context.Context, companyID string, req dto.ReconcileRequest, userID string) (*domain.ReconciliationSummary, error)
}

// ReportingSvcFacade computes account balances and trial-balance snapshots.
type ReportingSvcFacade interface {
	AccountBalance(ctx context.Context, companyID, accountID string, asOf *time.Time) (*domain.AccountBalance, error)
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error)
}
