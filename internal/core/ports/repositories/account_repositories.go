package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepositoryFacade is the read/apply surface of the external account
// directory consumed by this subsystem.
type AccountRepositoryFacade interface {
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs batch-fetches accounts scoped to the company.
	// IDs missing from the returned map do not exist in that company.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByIDsForUpdate locks the account rows for the duration of
	// the surrounding database transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to accounts
	// within the given database transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}
