package pgsql

import (
	"context"
	"errors"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	"github.com/finbooks/ledger-engine/internal/models"
	"github.com/finbooks/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const batchColumns = `
	batch_id, batch_number, company_id, name, description, status,
	total_transactions, success_count, total_amount,
	processing_started_at, processing_completed_at, error_message,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBatchRepository struct {
	BaseRepository
}

func newPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BatchRepositoryFacade = (*PgxBatchRepository)(nil)

func (r *PgxBatchRepository) CreateBatch(ctx context.Context, batch domain.BatchTransaction) error {
	m := mapping.ToModelBatch(batch)
	query := `
		INSERT INTO batch_transactions (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BatchID,
		m.BatchNumber,
		m.CompanyID,
		m.Name,
		m.Description,
		m.Status,
		m.TotalTransactions,
		m.SuccessCount,
		m.TotalAmount,
		m.ProcessingStartedAt,
		m.ProcessingCompletedAt,
		m.ErrorMessage,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert batch "+m.BatchID, err)
	}
	return nil
}

func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.BatchTransaction, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batch_transactions
		WHERE company_id = $1 AND batch_id = $2;
	`
	var m models.BatchTransaction
	err := r.Pool.QueryRow(ctx, query, companyID, batchID).Scan(
		&m.BatchID,
		&m.BatchNumber,
		&m.CompanyID,
		&m.Name,
		&m.Description,
		&m.Status,
		&m.TotalTransactions,
		&m.SuccessCount,
		&m.TotalAmount,
		&m.ProcessingStartedAt,
		&m.ProcessingCompletedAt,
		&m.ErrorMessage,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find batch by ID "+batchID, err)
	}
	batch := mapping.ToDomainBatch(m)
	return &batch, nil
}

func (r *PgxBatchRepository) UpdateBatch(ctx context.Context, batch domain.BatchTransaction) error {
	m := mapping.ToModelBatch(batch)
	query := `
		UPDATE batch_transactions
		SET status = $3, success_count = $4, total_amount = $5,
		    processing_started_at = $6, processing_completed_at = $7, error_message = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $1 AND batch_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.BatchID,
		m.Status,
		m.SuccessCount,
		m.TotalAmount,
		m.ProcessingStartedAt,
		m.ProcessingCompletedAt,
		m.ErrorMessage,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update batch "+m.BatchID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RequestCancel sets the cooperative cancel flag. Processing checks it
// between items and stops before starting the next one.
func (r *PgxBatchRepository) RequestCancel(ctx context.Context, companyID, batchID string) error {
	query := `
		UPDATE batch_transactions
		SET cancel_requested = TRUE
		WHERE company_id = $1 AND batch_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, companyID, batchID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to request cancel for batch "+batchID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBatchRepository) IsCancelRequested(ctx context.Context, batchID string) (bool, error) {
	var requested bool
	err := r.Pool.QueryRow(ctx, `SELECT cancel_requested FROM batch_transactions WHERE batch_id = $1;`, batchID).Scan(&requested)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrNotFound
		}
		return false, apperrors.NewAppError(500, "failed to read cancel flag for batch "+batchID, err)
	}
	return requested, nil
}
