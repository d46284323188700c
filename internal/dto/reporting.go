package dto

import (
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse reports one account's entry totals.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	AsOfDate    *time.Time      `json:"asOfDate,omitempty"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalanceRowResponse is one account line of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

// TrialBalanceResponse is the full snapshot; TotalDebit equals TotalCredit
// for an internally consistent ledger.
type TrialBalanceResponse struct {
	AsOfDate    time.Time                 `json:"asOfDate"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// ToAccountBalanceResponse converts a domain balance.
func ToAccountBalanceResponse(b *domain.AccountBalance, asOf *time.Time) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:   b.AccountID,
		AsOfDate:    asOf,
		DebitTotal:  b.DebitTotal,
		CreditTotal: b.CreditTotal,
		Net:         b.Net,
	}
}

// ToTrialBalanceResponse converts a domain trial balance snapshot.
func ToTrialBalanceResponse(tb *domain.TrialBalance, asOf time.Time) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:     r.AccountID,
			AccountCode:   r.AccountCode,
			AccountName:   r.AccountName,
			AccountType:   string(r.AccountType),
			DebitBalance:  r.DebitBalance,
			CreditBalance: r.CreditBalance,
			NetBalance:    r.NetBalance,
		}
	}
	return TrialBalanceResponse{
		AsOfDate:    asOf,
		Rows:        rows,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
	}
}
