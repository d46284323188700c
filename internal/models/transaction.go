package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors domain.TransactionStatus at the persistence layer.
type TransactionStatus string

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

// Transaction is the persistence model for the transactions table.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	TransactionNumber string            `json:"transactionNumber"`
	CompanyID         string            `json:"companyID"`
	TransactionType   TransactionType   `json:"transactionType"`
	Description       string            `json:"description"`
	TransactionDate   time.Time         `json:"transactionDate"`
	PostingDate       *time.Time        `json:"postingDate"`
	FiscalYear        int               `json:"fiscalYear"`
	FiscalPeriod      int               `json:"fiscalPeriod"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	CurrencyCode      string            `json:"currencyCode"`
	ExchangeRate      decimal.Decimal   `json:"exchangeRate"`
	Status            TransactionStatus `json:"status"`
	ApprovalStatus    string            `json:"approvalStatus"`

	ReconciliationStatus string     `json:"reconciliationStatus"`
	ReconciledAt         *time.Time `json:"reconciledAt"`
	ReconciledBy         *string    `json:"reconciledBy"`

	PostedAt *time.Time `json:"postedAt"`
	PostedBy *string    `json:"postedBy"`

	OriginalTransactionID  *string `json:"originalTransactionID"`
	ReversingTransactionID *string `json:"reversingTransactionID"`

	SourceDocumentType *string `json:"sourceDocumentType"`
	SourceDocumentID   *string `json:"sourceDocumentID"`
	RecurringRule      *string `json:"recurringRule"`
	BatchID            *string `json:"batchID"`

	AuditFields
}
