package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persistence model for the accounts table.
type Account struct {
	AccountID               string          `json:"accountID"`
	CompanyID               string          `json:"companyID"`
	AccountCode             string          `json:"accountCode"`
	Name                    string          `json:"name"`
	AccountType             string          `json:"accountType"`
	CurrencyCode            string          `json:"currencyCode"`
	AllowDirectTransactions bool            `json:"allowDirectTransactions"`
	Status                  string          `json:"status"`
	CurrentBalance          decimal.Decimal `json:"currentBalance"`
	AuditFields
}
