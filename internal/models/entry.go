package models

import (
	"github.com/shopspring/decimal"
)

// TransactionEntry is the persistence model for the transaction_entries table.
type TransactionEntry struct {
	EntryID       string           `json:"entryID"`
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	LineNumber    int              `json:"lineNumber"`
	DebitAmount   decimal.Decimal  `json:"debitAmount"`
	CreditAmount  decimal.Decimal  `json:"creditAmount"`
	Description   string           `json:"description"`
	TaxCode       *string          `json:"taxCode"`
	TaxAmount     *decimal.Decimal `json:"taxAmount"`
	ProjectID     *string          `json:"projectID"`
	CostCenterID  *string          `json:"costCenterID"`
	DepartmentID  *string          `json:"departmentID"`
	AuditFields
}
