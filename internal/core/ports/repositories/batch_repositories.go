package repositories

import (
	"context"

	"github.com/finbooks/ledger-engine/internal/core/domain"
)

// BatchRepositoryFacade persists batch records and their processing state.
type BatchRepositoryFacade interface {
	CreateBatch(ctx context.Context, batch domain.BatchTransaction) error

	FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.BatchTransaction, error)

	// UpdateBatch writes status, counters, timestamps and the aggregated
	// error message.
	UpdateBatch(ctx context.Context, batch domain.BatchTransaction) error

	// RequestCancel sets the cooperative cancel flag checked between items.
	RequestCancel(ctx context.Context, companyID, batchID string) error

	IsCancelRequested(ctx context.Context, batchID string) (bool, error)
}
