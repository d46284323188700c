package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
)

// ReportingRepositoryFacade serves read-only balance aggregations.
type ReportingRepositoryFacade interface {
	// GetAccountBalance sums entries for one account, optionally restricted
	// to those created on or before asOf.
	GetAccountBalance(ctx context.Context, companyID, accountID string, asOf *time.Time) (*domain.AccountBalance, error)

	// GetTrialBalanceData aggregates per-account debit/credit totals over
	// posted transactions dated on or before asOf.
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
