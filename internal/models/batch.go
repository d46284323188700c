package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchTransaction is the persistence model for the batch_transactions table.
type BatchTransaction struct {
	BatchID           string          `json:"batchID"`
	BatchNumber       string          `json:"batchNumber"`
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	TotalTransactions int             `json:"totalTransactions"`
	SuccessCount      int             `json:"successCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`

	ProcessingStartedAt   *time.Time `json:"processingStartedAt"`
	ProcessingCompletedAt *time.Time `json:"processingCompletedAt"`
	ErrorMessage          string     `json:"errorMessage"`
	AuditFields
}
