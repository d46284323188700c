package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	"github.com/finbooks/ledger-engine/internal/models"
	"github.com/finbooks/ledger-engine/internal/utils/accounting"
	"github.com/finbooks/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `
	transaction_id, transaction_number, company_id, transaction_type, description,
	transaction_date, posting_date, fiscal_year, fiscal_period, total_amount,
	currency_code, exchange_rate, status, approval_status,
	reconciliation_status, reconciled_at, reconciled_by, posted_at, posted_by,
	original_transaction_id, reversing_transaction_id,
	source_document_type, source_document_id, recurring_rule, batch_id,
	created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `
	entry_id, transaction_id, account_id, line_number, debit_amount, credit_amount,
	description, tax_code, tax_amount, project_id, cost_center_id, department_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo  portsrepo.AccountRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// newPgxTransactionRepository creates the repository for transaction headers
// and entries. The sequence repository is injected so document numbers can
// be allocated inside the same database transaction as the insert that
// consumes them.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, sequenceRepo portsrepo.SequenceRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		sequenceRepo:   sequenceRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// prefixColumns qualifies a column list with a table alias for joins.
func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.CompanyID,
		&m.TransactionType,
		&m.Description,
		&m.TransactionDate,
		&m.PostingDate,
		&m.FiscalYear,
		&m.FiscalPeriod,
		&m.TotalAmount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Status,
		&m.ApprovalStatus,
		&m.ReconciliationStatus,
		&m.ReconciledAt,
		&m.ReconciledBy,
		&m.PostedAt,
		&m.PostedBy,
		&m.OriginalTransactionID,
		&m.ReversingTransactionID,
		&m.SourceDocumentType,
		&m.SourceDocumentID,
		&m.RecurringRule,
		&m.BatchID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// insertHeaderInTx inserts a transaction header within an open database
// transaction.
func (r *PgxTransactionRepository) insertHeaderInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionNumber,
		m.CompanyID,
		m.TransactionType,
		m.Description,
		m.TransactionDate,
		m.PostingDate,
		m.FiscalYear,
		m.FiscalPeriod,
		m.TotalAmount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.Status,
		m.ApprovalStatus,
		m.ReconciliationStatus,
		m.ReconciledAt,
		m.ReconciledBy,
		m.PostedAt,
		m.PostedBy,
		m.OriginalTransactionID,
		m.ReversingTransactionID,
		m.SourceDocumentType,
		m.SourceDocumentID,
		m.RecurringRule,
		m.BatchID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// insertEntriesInTx batch-inserts entries within an open database transaction.
func (r *PgxTransactionRepository) insertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.TransactionEntry) error {
	query := `
		INSERT INTO transaction_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.TransactionID,
			m.AccountID,
			m.LineNumber,
			m.DebitAmount,
			m.CreditAmount,
			m.Description,
			m.TaxCode,
			m.TaxAmount,
			m.ProjectID,
			m.CostCenterID,
			m.DepartmentID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry insert batch", err)
	}
	return nil
}

// allocateNumberInTx draws the next per-scope counter value and formats it.
func (r *PgxTransactionRepository) allocateNumberInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (string, error) {
	prefix := accounting.DocumentPrefix(txn.TransactionType)
	value, err := r.sequenceRepo.NextValueInTx(ctx, tx, txn.CompanyID, prefix, txn.FiscalYear)
	if err != nil {
		return "", err
	}
	return accounting.FormatDocumentNumber(prefix, txn.FiscalYear, value), nil
}

// CreateTransaction inserts the header and its entries atomically. The
// transaction number is allocated from the counter table inside the same
// database transaction, so a failed insert never consumes a visible number
// out of order and concurrent creates never collide.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.allocateNumberInTx(ctx, tx, txn)
	if err != nil {
		return "", err
	}
	txn.TransactionNumber = number

	if err := r.insertHeaderInTx(ctx, tx, txn); err != nil {
		return "", err
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1 AND transaction_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, companyID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM transaction_entries
		WHERE transaction_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.TransactionEntry{}
	for rows.Next() {
		var e models.TransactionEntry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.LineNumber,
			&e.DebitAmount,
			&e.CreditAmount,
			&e.Description,
			&e.TaxCode,
			&e.TaxAmount,
			&e.ProjectID,
			&e.CostCenterID,
			&e.DepartmentID,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, companyID string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	return r.listTransactions(ctx, query, companyID, limit, offset)
}

func (r *PgxTransactionRepository) ListTransactionsByBatchID(ctx context.Context, companyID, batchID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1 AND batch_id = $2
		ORDER BY created_at, transaction_id;
	`
	return r.listTransactions(ctx, query, companyID, batchID)
}

func (r *PgxTransactionRepository) updateHeaderInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET description = $3, transaction_date = $4, fiscal_year = $5, fiscal_period = $6,
		    total_amount = $7, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1 AND transaction_id = $2;
	`
	ct, err := tx.Exec(ctx, query,
		m.CompanyID,
		m.TransactionID,
		m.Description,
		m.TransactionDate,
		m.FiscalYear,
		m.FiscalPeriod,
		m.TotalAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransactionHeader(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntries rewrites the header and swaps the complete entry set in one
// database transaction.
func (r *PgxTransactionRepository) ReplaceEntries(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, txn); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_entries WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for transaction "+txn.TransactionID, err)
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// applyBalancesInTx locks the affected accounts and applies the deltas.
func (r *PgxTransactionRepository) applyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// PostTransaction flips the status to Posted and applies the balance deltas
// in one database transaction. The guarded UPDATE doubles as the concurrency
// check: a second poster finds zero rows in a postable status and fails
// without touching any balance.
func (r *PgxTransactionRepository) PostTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $3, posting_date = $4, posted_at = $5, posted_by = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND transaction_id = $2 AND status IN ('DRAFT', 'PENDING');
	`
	ct, err := tx.Exec(ctx, query,
		txn.CompanyID,
		txn.TransactionID,
		string(txn.Status),
		txn.PostingDate,
		txn.PostedAt,
		txn.PostedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post transaction "+txn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction "+txn.TransactionID+" is not in a postable status", apperrors.ErrConflict)
	}

	if err := r.applyBalancesInTx(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// VoidTransaction flips a posted transaction to Voided and backs its balance
// effects out in one database transaction.
func (r *PgxTransactionRepository) VoidTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND transaction_id = $2 AND status = 'POSTED';
	`
	ct, err := tx.Exec(ctx, query,
		txn.CompanyID,
		txn.TransactionID,
		string(txn.Status),
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void transaction "+txn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction "+txn.TransactionID+" is not posted", apperrors.ErrConflict)
	}

	if err := r.applyBalancesInTx(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveReversal inserts the posted reversal with its entries and balance
// application, and marks the original Reversed with the back-link, all in
// one database transaction. Returns the reversal's allocated number.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.TransactionEntry, balanceChanges map[string]decimal.Decimal, originalID string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.allocateNumberInTx(ctx, tx, reversal)
	if err != nil {
		return "", err
	}
	reversal.TransactionNumber = number

	if err := r.insertHeaderInTx(ctx, tx, reversal); err != nil {
		return "", err
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return "", err
	}
	if err := r.applyBalancesInTx(ctx, tx, balanceChanges, reversal.CreatedBy, reversal.CreatedAt); err != nil {
		return "", err
	}

	// The guarded UPDATE rejects a concurrent second reversal of the same
	// original.
	query := `
		UPDATE transactions
		SET status = 'REVERSED', reversing_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND transaction_id = $2 AND status = 'POSTED';
	`
	ct, err := tx.Exec(ctx, query,
		reversal.CompanyID,
		originalID,
		reversal.TransactionID,
		reversal.CreatedAt,
		reversal.CreatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to mark transaction "+originalID+" reversed", err)
	}
	if ct.RowsAffected() == 0 {
		return "", apperrors.NewAppError(409, "transaction "+originalID+" is not posted", apperrors.ErrConflict)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

// UpdateTransactionStatus moves an editable transaction to the given status.
// The guarded UPDATE loses the race against a concurrent post: once the row
// leaves DRAFT/PENDING its balance effects are applied and a plain status
// overwrite would strand them.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, companyID, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND transaction_id = $2 AND status IN ('DRAFT', 'PENDING');
	`
	ct, err := r.Pool.Exec(ctx, query, companyID, transactionID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transaction "+transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction "+transactionID+" is no longer editable", apperrors.ErrConflict)
	}
	return nil
}

// DeleteTransaction removes a non-posted transaction and its entries in one
// database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_entries WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for transaction "+transactionID, err)
	}

	query := `
		DELETE FROM transactions
		WHERE company_id = $1 AND transaction_id = $2 AND status <> 'POSTED';
	`
	ct, err := tx.Exec(ctx, query, companyID, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

// FindUnreconciledByAccount returns unreconciled posted transactions with at
// least one entry on the account, dated within [from, to].
func (r *PgxTransactionRepository) FindUnreconciledByAccount(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT DISTINCT ` + prefixColumns("t", transactionColumns) + `
		FROM transactions t
		JOIN transaction_entries e ON e.transaction_id = t.transaction_id
		WHERE t.company_id = $1
		  AND e.account_id = $2
		  AND t.status = 'POSTED'
		  AND t.reconciliation_status = 'UNRECONCILED'
		  AND t.transaction_date BETWEEN $3 AND $4
		ORDER BY t.transaction_date;
	`
	return r.listTransactions(ctx, query, companyID, accountID, from, to)
}

// MarkReconciled bulk-sets reconciliation status on posted transactions.
// Already-reconciled rows are skipped, making the call idempotent; the count
// of newly reconciled rows is returned.
func (r *PgxTransactionRepository) MarkReconciled(ctx context.Context, companyID string, transactionIDs []string, userID string, now time.Time) (int, error) {
	query := `
		UPDATE transactions
		SET reconciliation_status = 'RECONCILED', reconciled_at = $3, reconciled_by = $4,
		    last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1
		  AND transaction_id = ANY($2)
		  AND status = 'POSTED'
		  AND reconciliation_status <> 'RECONCILED';
	`
	ct, err := r.Pool.Exec(ctx, query, companyID, transactionIDs, now, userID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark transactions reconciled", err)
	}
	return int(ct.RowsAffected()), nil
}
