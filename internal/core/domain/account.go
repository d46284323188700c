package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountStatus is the usability state of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account represents a ledger account within the core domain.
// Account CRUD is owned by an external directory; this subsystem only reads
// accounts for validation and applies posted entry effects to CurrentBalance.
type Account struct {
	AccountID               string          `json:"accountID"`
	CompanyID               string          `json:"companyID"`
	AccountCode             string          `json:"accountCode"`
	Name                    string          `json:"name"`
	AccountType             AccountType     `json:"accountType"`
	CurrencyCode            string          `json:"currencyCode"`
	AllowDirectTransactions bool            `json:"allowDirectTransactions"`
	Status                  AccountStatus   `json:"status"`
	CurrentBalance          decimal.Decimal `json:"currentBalance"`
	AuditFields
}
