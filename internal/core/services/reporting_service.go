package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService computes read-only balance aggregations from posted
// transactions.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) AccountBalance(ctx context.Context, companyID, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, err
	}
	balance, err := s.reportingRepo.GetAccountBalance(ctx, companyID, accountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute account balance: %w", err)
	}
	return balance, nil
}

// TrialBalance builds the per-account snapshot as of a date. Each account
// reports its net position on its natural side; for a ledger built from
// balanced transactions the grand totals are equal.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	report := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		net := row.DebitBalance.Sub(row.CreditBalance)
		row.NetBalance = net
		// The net lands on one side only; the other is zeroed.
		if net.IsNegative() {
			row.DebitBalance = decimal.Zero
			row.CreditBalance = net.Neg()
		} else {
			row.DebitBalance = net
			row.CreditBalance = decimal.Zero
		}
		report.TotalDebit = report.TotalDebit.Add(row.DebitBalance)
		report.TotalCredit = report.TotalCredit.Add(row.CreditBalance)
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}
