package pgsql

import (
	"context"
	"time"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

// GetAccountBalance sums posted entry amounts for one account, optionally
// restricted to transactions dated on or before asOf.
func (r *ReportingRepository) GetAccountBalance(ctx context.Context, companyID, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	query := `
		SELECT COALESCE(SUM(e.debit_amount), 0), COALESCE(SUM(e.credit_amount), 0)
		FROM transaction_entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE t.company_id = $1
		  AND e.account_id = $2
		  AND t.status = 'POSTED'
		  AND ($3::timestamptz IS NULL OR t.transaction_date <= $3);
	`
	balance := &domain.AccountBalance{AccountID: accountID}
	err := r.Pool.QueryRow(ctx, query, companyID, accountID, asOf).Scan(&balance.DebitTotal, &balance.CreditTotal)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	balance.Net = balance.DebitTotal.Sub(balance.CreditTotal)
	return balance, nil
}

// GetTrialBalanceData aggregates per-account debit and credit totals over
// posted transactions dated on or before asOf. Accounts without activity
// report zero on both sides.
func (r *ReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.account_code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN t.status = 'POSTED' AND t.transaction_date <= $2 THEN e.debit_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN t.status = 'POSTED' AND t.transaction_date <= $2 THEN e.credit_amount ELSE 0 END), 0)
		FROM accounts a
		LEFT JOIN transaction_entries e ON e.account_id = a.account_id
		LEFT JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE a.company_id = $1
		GROUP BY a.account_id, a.account_code, a.name, a.account_type
		ORDER BY a.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	results := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.DebitBalance,
			&row.CreditBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.AccountType = domain.AccountType(accountType)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return results, nil
}
