package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepositoryFacade allocates monotonically increasing counter values
// per (company, document type, year) scope. Both variants perform the
// increment-and-return as a single atomic storage operation; two concurrent
// callers on the same scope can never observe the same value.
type SequenceRepositoryFacade interface {
	// NextValueInTx allocates the next counter value inside an existing
	// database transaction, so the number's first use and its allocation
	// commit or roll back together.
	NextValueInTx(ctx context.Context, tx pgx.Tx, companyID, documentType string, year int) (int64, error)

	// NextValue allocates the next counter value in its own transaction.
	NextValue(ctx context.Context, companyID, documentType string, year int) (int64, error)
}
