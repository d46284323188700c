package services

import (
	"context"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/finbooks/ledger-engine/internal/dto"
)

// ValidationSvcFacade enforces double-entry invariants and account usability
// rules on a candidate entry set. It is a pure function of the entries plus
// read-only account lookups; all rule violations are collected, never
// short-circuited.
type ValidationSvcFacade interface {
	Validate(ctx context.Context, companyID string, entries []domain.TransactionEntry) (*domain.ValidationResult, error)
}

// SequenceSvcFacade produces collision-free human-readable document numbers
// scoped by (company, document type, year).
type SequenceSvcFacade interface {
	NextTransactionNumber(ctx context.Context, companyID string, docType domain.TransactionType, year int) (string, error)
	NextBatchNumber(ctx context.Context, companyID string, year int) (string, error)
}

// TransactionSvcFacade owns the transaction lifecycle state machine.
type TransactionSvcFacade interface {
	// CreateTransaction validates, numbers and persists a Draft
	// transaction. A ValidationFailedError is returned when the entry set
	// is rejected; nothing is written in that case.
	CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// CreateTransactionForBatch is CreateTransaction with the owning batch
	// recorded on the created transaction.
	CreateTransactionForBatch(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID, batchID string) (*domain.Transaction, error)

	GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)

	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// UpdateTransaction patches a Draft/Pending transaction; entry
	// replacement is atomic.
	UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// PostTransaction re-validates and finalizes the transaction, applying
	// entry effects to account balances atomically with the status flip.
	PostTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error)

	// ReverseTransaction creates a posted mirror-image Reversal transaction
	// and marks the original Reversed.
	ReverseTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error)

	CancelTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error)

	// VoidTransaction voids a posted transaction, backing its balance
	// effects out atomically.
	VoidTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a non-posted transaction and its entries.
	DeleteTransaction(ctx context.Context, companyID, transactionID string) error
}
