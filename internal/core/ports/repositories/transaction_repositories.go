package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryFacade persists transaction headers and their entries.
// Header and entries are always written in one database transaction so a
// header failure can never leave orphan entries and vice versa.
type TransactionRepositoryFacade interface {
	// CreateTransaction inserts the header and its entries atomically. The
	// transaction number is allocated inside the same database transaction
	// from the per-scope counter and returned.
	CreateTransaction(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry) (string, error)

	// FindTransactionByID returns the header scoped to the company. A row
	// owned by a different company is reported as not found.
	FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)

	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionEntry, error)

	ListTransactions(ctx context.Context, companyID string, limit, offset int) ([]domain.Transaction, error)

	ListTransactionsByBatchID(ctx context.Context, companyID, batchID string) ([]domain.Transaction, error)

	// UpdateTransactionHeader updates the mutable header fields.
	UpdateTransactionHeader(ctx context.Context, txn domain.Transaction) error

	// ReplaceEntries updates the header and deletes and recreates the
	// transaction's entries in one database transaction; a crash cannot
	// leave the transaction with a partial entry set.
	ReplaceEntries(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry) error

	// PostTransaction flips the status to Posted, stamps postedBy/postedAt
	// and applies the balance deltas to the locked accounts, all in one
	// database transaction.
	PostTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// VoidTransaction flips a posted transaction to Voided and backs its
	// balance effects out, in one database transaction.
	VoidTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// SaveReversal inserts the posted reversal (header, entries, balance
	// application) and marks the original Reversed with the back-link, all
	// in one database transaction. Returns the reversal's allocated number.
	SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.TransactionEntry, balanceChanges map[string]decimal.Decimal, originalID string) (string, error)

	// UpdateTransactionStatus updates the lifecycle status and audit stamps
	// of a transaction still in an editable status (used for Cancel). Returns
	// a conflict error when the row has already left DRAFT/PENDING.
	UpdateTransactionStatus(ctx context.Context, companyID, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error

	// DeleteTransaction removes a non-posted transaction and cascades its
	// entries, in one database transaction.
	DeleteTransaction(ctx context.Context, companyID, transactionID string) error

	// FindUnreconciledByAccount returns unreconciled transactions touching
	// the account dated within [from, to].
	FindUnreconciledByAccount(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.Transaction, error)

	// MarkReconciled bulk-sets reconciliation status on the named
	// transactions. Rows already reconciled are left untouched; the count of
	// newly reconciled rows is returned.
	MarkReconciled(ctx context.Context, companyID string, transactionIDs []string, userID string, now time.Time) (int, error)
}
