package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance summarises one account's entry totals as of a date.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Net         decimal.Decimal `json:"net"` // debitTotal - creditTotal
}

// TrialBalanceRow is a single account line of a trial balance report.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

// TrialBalance is the full snapshot. For an internally consistent ledger the
// grand debit and credit totals are equal.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}
