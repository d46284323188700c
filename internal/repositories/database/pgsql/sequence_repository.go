package pgsql

import (
	"context"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// nextValueQuery bumps the per-scope counter in a single atomic statement.
// The upsert takes a row lock, so two concurrent callers serialize on the
// counter row and always observe distinct values. A rolled-back caller may
// leave a gap in the sequence, which is acceptable; duplicates are not.
const nextValueQuery = `
	INSERT INTO document_sequences (company_id, document_type, fiscal_year, last_value)
	VALUES ($1, $2, $3, 1)
	ON CONFLICT (company_id, document_type, fiscal_year)
	DO UPDATE SET last_value = document_sequences.last_value + 1
	RETURNING last_value;
`

// NextValueInTx allocates the next counter value within an open database
// transaction so the bump commits or rolls back with its consumer.
func (r *PgxSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, companyID, documentType string, year int) (int64, error) {
	var value int64
	if err := tx.QueryRow(ctx, nextValueQuery, companyID, documentType, year).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate sequence value for "+documentType, err)
	}
	return value, nil
}

// NextValue allocates the next counter value in its own transaction.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, companyID, documentType string, year int) (int64, error) {
	var value int64
	if err := r.Pool.QueryRow(ctx, nextValueQuery, companyID, documentType, year).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate sequence value for "+documentType, err)
	}
	return value, nil
}
