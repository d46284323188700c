package dto

import (
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one candidate ledger line. Exactly one of
// DebitAmount/CreditAmount must be positive; the validation engine reports
// violations with machine codes rather than binding failures.
type CreateEntryRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal  `json:"debitAmount"`
	CreditAmount decimal.Decimal  `json:"creditAmount"`
	Description  string           `json:"description"`
	TaxCode      *string          `json:"taxCode"`
	TaxAmount    *decimal.Decimal `json:"taxAmount"`
	ProjectID    *string          `json:"projectID"`
	CostCenterID *string          `json:"costCenterID"`
	DepartmentID *string          `json:"departmentID"`
}

// CreateTransactionRequest creates a Draft transaction with its entries.
type CreateTransactionRequest struct {
	TransactionType    domain.TransactionType `json:"transactionType" binding:"required"`
	TransactionDate    time.Time              `json:"transactionDate" binding:"required"`
	Description        string                 `json:"description" binding:"required"`
	CurrencyCode       string                 `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate       *decimal.Decimal       `json:"exchangeRate"`
	SourceDocumentType *string                `json:"sourceDocumentType"`
	SourceDocumentID   *string                `json:"sourceDocumentID"`
	RecurringRule      *string                `json:"recurringRule"`
	Entries            []CreateEntryRequest   `json:"entries" binding:"required,dive"`
}

// UpdateTransactionRequest patches a Draft/Pending transaction. A non-nil
// Entries slice replaces the full entry set atomically.
type UpdateTransactionRequest struct {
	Description     *string               `json:"description"`
	TransactionDate *time.Time            `json:"transactionDate"`
	Entries         *[]CreateEntryRequest `json:"entries"`
}

// EntryResponse is the outward shape of a ledger line.
type EntryResponse struct {
	EntryID      string           `json:"entryID"`
	AccountID    string           `json:"accountID"`
	LineNumber   int              `json:"lineNumber"`
	DebitAmount  decimal.Decimal  `json:"debitAmount"`
	CreditAmount decimal.Decimal  `json:"creditAmount"`
	Description  string           `json:"description,omitempty"`
	TaxCode      *string          `json:"taxCode,omitempty"`
	TaxAmount    *decimal.Decimal `json:"taxAmount,omitempty"`
	ProjectID    *string          `json:"projectID,omitempty"`
	CostCenterID *string          `json:"costCenterID,omitempty"`
	DepartmentID *string          `json:"departmentID,omitempty"`
}

// TransactionResponse is the outward shape of a transaction header.
type TransactionResponse struct {
	TransactionID          string          `json:"transactionID"`
	TransactionNumber      string          `json:"transactionNumber"`
	TransactionType        string          `json:"transactionType"`
	Description            string          `json:"description"`
	TransactionDate        time.Time       `json:"transactionDate"`
	PostingDate            *time.Time      `json:"postingDate,omitempty"`
	FiscalYear             int             `json:"fiscalYear"`
	FiscalPeriod           int             `json:"fiscalPeriod"`
	TotalAmount            decimal.Decimal `json:"totalAmount"`
	CurrencyCode           string          `json:"currencyCode"`
	ExchangeRate           decimal.Decimal `json:"exchangeRate"`
	Status                 string          `json:"status"`
	ApprovalStatus         string          `json:"approvalStatus"`
	ReconciliationStatus   string          `json:"reconciliationStatus"`
	PostedAt               *time.Time      `json:"postedAt,omitempty"`
	PostedBy               *string         `json:"postedBy,omitempty"`
	ReconciledAt           *time.Time      `json:"reconciledAt,omitempty"`
	ReconciledBy           *string         `json:"reconciledBy,omitempty"`
	OriginalTransactionID  *string         `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string         `json:"reversingTransactionID,omitempty"`
	BatchID                *string         `json:"batchID,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
	CreatedBy              string          `json:"createdBy"`
	Entries                []EntryResponse `json:"entries,omitempty"`
}

// ListTransactionsParams carries pagination for transaction listing.
type ListTransactionsParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ValidationFailureResponse is the 400 body for rejected entry sets.
type ValidationFailureResponse struct {
	Code     string                     `json:"code"` // always VALIDATION_FAILED
	Errors   []domain.ValidationError   `json:"errors"`
	Warnings []domain.ValidationWarning `json:"warnings"`
}

// ToEntryResponse converts a domain entry to its response DTO.
func ToEntryResponse(e *domain.TransactionEntry) EntryResponse {
	return EntryResponse{
		EntryID:      e.EntryID,
		AccountID:    e.AccountID,
		LineNumber:   e.LineNumber,
		DebitAmount:  e.DebitAmount,
		CreditAmount: e.CreditAmount,
		Description:  e.Description,
		TaxCode:      e.TaxCode,
		TaxAmount:    e.TaxAmount,
		ProjectID:    e.ProjectID,
		CostCenterID: e.CostCenterID,
		DepartmentID: e.DepartmentID,
	}
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:          t.TransactionID,
		TransactionNumber:      t.TransactionNumber,
		TransactionType:        string(t.TransactionType),
		Description:            t.Description,
		TransactionDate:        t.TransactionDate,
		PostingDate:            t.PostingDate,
		FiscalYear:             t.FiscalYear,
		FiscalPeriod:           t.FiscalPeriod,
		TotalAmount:            t.TotalAmount,
		CurrencyCode:           t.CurrencyCode,
		ExchangeRate:           t.ExchangeRate,
		Status:                 string(t.Status),
		ApprovalStatus:         string(t.ApprovalStatus),
		ReconciliationStatus:   string(t.ReconciliationStatus),
		PostedAt:               t.PostedAt,
		PostedBy:               t.PostedBy,
		ReconciledAt:           t.ReconciledAt,
		ReconciledBy:           t.ReconciledBy,
		OriginalTransactionID:  t.OriginalTransactionID,
		ReversingTransactionID: t.ReversingTransactionID,
		BatchID:                t.BatchID,
		CreatedAt:              t.CreatedAt,
		CreatedBy:              t.CreatedBy,
	}
	if len(t.Entries) > 0 {
		resp.Entries = make([]EntryResponse, len(t.Entries))
		for i := range t.Entries {
			resp.Entries[i] = ToEntryResponse(&t.Entries[i])
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
