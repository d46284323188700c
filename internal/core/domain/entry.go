package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionEntry is one ledger line within a transaction. Exactly one of
// DebitAmount/CreditAmount is positive; within a transaction the debit and
// credit sides sum to the same total.
type TransactionEntry struct {
	EntryID       string           `json:"entryID"`
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	LineNumber    int              `json:"lineNumber"` // stable ordering within the transaction
	DebitAmount   decimal.Decimal  `json:"debitAmount"`
	CreditAmount  decimal.Decimal  `json:"creditAmount"`
	Description   string           `json:"description"`
	TaxCode       *string          `json:"taxCode,omitempty"`
	TaxAmount     *decimal.Decimal `json:"taxAmount,omitempty"`
	ProjectID     *string          `json:"projectID,omitempty"`
	CostCenterID  *string          `json:"costCenterID,omitempty"`
	DepartmentID  *string          `json:"departmentID,omitempty"`
	AuditFields
}

// IsDebit reports whether the entry carries a debit amount.
func (e *TransactionEntry) IsDebit() bool {
	return e.DebitAmount.IsPositive()
}

// Amount returns whichever side of the entry is set.
func (e *TransactionEntry) Amount() decimal.Decimal {
	if e.IsDebit() {
		return e.DebitAmount
	}
	return e.CreditAmount
}
