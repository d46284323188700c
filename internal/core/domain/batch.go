package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus is the processing state of a transaction batch.
type BatchStatus string

const (
	BatchPending    BatchStatus = "PENDING"
	BatchProcessing BatchStatus = "PROCESSING"
	BatchCompleted  BatchStatus = "COMPLETED"
	BatchFailed     BatchStatus = "FAILED"
	BatchCancelled  BatchStatus = "CANCELLED"
)

// BatchTransaction is a named group of transaction-creation requests
// processed asynchronously. Created transactions are associated by foreign
// key and outlive their batch.
type BatchTransaction struct {
	BatchID           string          `json:"batchID"`
	BatchNumber       string          `json:"batchNumber"`
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Status            BatchStatus     `json:"status"`
	TotalTransactions int             `json:"totalTransactions"`
	SuccessCount      int             `json:"successCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`

	ProcessingStartedAt   *time.Time `json:"processingStartedAt,omitempty"`
	ProcessingCompletedAt *time.Time `json:"processingCompletedAt,omitempty"`

	// ErrorMessage aggregates per-item failures; empty when every item
	// succeeded.
	ErrorMessage string `json:"errorMessage,omitempty"`
	AuditFields
}
