package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the business event a transaction records.
type TransactionType string

const (
	JournalEntry   TransactionType = "JOURNAL_ENTRY"
	Invoice        TransactionType = "INVOICE"
	Payment        TransactionType = "PAYMENT"
	Receipt        TransactionType = "RECEIPT"
	Adjustment     TransactionType = "ADJUSTMENT"
	Transfer       TransactionType = "TRANSFER"
	Depreciation   TransactionType = "DEPRECIATION"
	Accrual        TransactionType = "ACCRUAL"
	Reversal       TransactionType = "REVERSAL"
	OpeningBalance TransactionType = "OPENING_BALANCE"
	ClosingEntry   TransactionType = "CLOSING_ENTRY"
)

// TransactionStatus is the lifecycle state of a transaction.
// Posted, Reversed, Cancelled and Voided are terminal for editing purposes;
// entries are mutable only while the status is Draft or Pending.
type TransactionStatus string

const (
	Draft     TransactionStatus = "DRAFT"
	Pending   TransactionStatus = "PENDING"
	Posted    TransactionStatus = "POSTED"
	Cancelled TransactionStatus = "CANCELLED"
	Reversed  TransactionStatus = "REVERSED"
	Voided    TransactionStatus = "VOIDED"
)

// ApprovalStatus tracks the approval workflow state.
type ApprovalStatus string

const (
	ApprovalNotRequired ApprovalStatus = "NOT_REQUIRED"
	ApprovalPending     ApprovalStatus = "PENDING"
	ApprovalApproved    ApprovalStatus = "APPROVED"
	ApprovalRejected    ApprovalStatus = "REJECTED"
)

// ReconciliationStatus tracks whether a transaction has been matched against
// an external statement.
type ReconciliationStatus string

const (
	Unreconciled        ReconciliationStatus = "UNRECONCILED"
	PartiallyReconciled ReconciliationStatus = "PARTIAL"
	FullyReconciled     ReconciliationStatus = "RECONCILED"
	Disputed            ReconciliationStatus = "DISPUTED"
)

// Transaction represents a balanced financial event header. Its entries are
// exclusively owned by the transaction and share its lifetime.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	TransactionNumber string            `json:"transactionNumber"` // unique per company+type+year
	CompanyID         string            `json:"companyID"`
	TransactionType   TransactionType   `json:"transactionType"`
	Description       string            `json:"description"`
	TransactionDate   time.Time         `json:"transactionDate"`
	PostingDate       *time.Time        `json:"postingDate,omitempty"`
	FiscalYear        int               `json:"fiscalYear"`
	FiscalPeriod      int               `json:"fiscalPeriod"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"` // sum of one balanced side
	CurrencyCode      string            `json:"currencyCode"`
	ExchangeRate      decimal.Decimal   `json:"exchangeRate"`
	Status            TransactionStatus `json:"status"`
	ApprovalStatus    ApprovalStatus    `json:"approvalStatus"`

	ReconciliationStatus ReconciliationStatus `json:"reconciliationStatus"`
	ReconciledAt         *time.Time           `json:"reconciledAt,omitempty"`
	ReconciledBy         *string              `json:"reconciledBy,omitempty"`

	PostedAt *time.Time `json:"postedAt,omitempty"`
	PostedBy *string    `json:"postedBy,omitempty"`

	// Reversal links: a reversal points at its original via
	// OriginalTransactionID, the reversed original points back via
	// ReversingTransactionID.
	OriginalTransactionID  *string `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string `json:"reversingTransactionID,omitempty"`

	SourceDocumentType *string `json:"sourceDocumentType,omitempty"`
	SourceDocumentID   *string `json:"sourceDocumentID,omitempty"`
	RecurringRule      *string `json:"recurringRule,omitempty"`
	BatchID            *string `json:"batchID,omitempty"` // set when created by a batch

	Entries []TransactionEntry `json:"entries,omitempty"`
	AuditFields
}

// IsEditable reports whether the transaction's header and entries may still
// be modified.
func (t *Transaction) IsEditable() bool {
	return t.Status == Draft || t.Status == Pending
}
