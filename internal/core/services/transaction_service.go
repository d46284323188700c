package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/finbooks/ledger-engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ValidationFailedError is returned when an entry set is rejected by the
// validation engine. It carries the full result so callers can surface every
// violation, not just the first.
type ValidationFailedError struct {
	Result *domain.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(e.Result.Errors))
}

// ErrStateConflict reports a lifecycle operation applied to a transaction in
// the wrong state, e.g. posting a cancelled transaction.
type ErrStateConflict struct {
	TransactionID string
	Status        domain.TransactionStatus
	Operation     string
}

func (e *ErrStateConflict) Error() string {
	return fmt.Sprintf("cannot %s transaction %s in status %s", e.Operation, e.TransactionID, e.Status)
}

// Code returns the machine code for the conflict.
func (e *ErrStateConflict) Code() string {
	if e.Operation == "post" && e.Status == domain.Posted {
		return "ALREADY_POSTED"
	}
	return "STATE_CONFLICT"
}

// transactionService owns the transaction lifecycle state machine. All
// mutations that touch account balances are delegated to the repository as
// single database transactions.
type transactionService struct {
	txnRepo       portsrepo.TransactionRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	validationSvc portssvc.ValidationSvcFacade
}

// NewTransactionService creates the transaction lifecycle manager.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, validationSvc portssvc.ValidationSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:       txnRepo,
		accountRepo:   accountRepo,
		validationSvc: validationSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// buildEntries converts entry requests into domain entries with fresh IDs
// and stable line numbers.
func buildEntries(reqs []dto.CreateEntryRequest, transactionID, userID string, now time.Time) []domain.TransactionEntry {
	entries := make([]domain.TransactionEntry, len(reqs))
	for i, r := range reqs {
		entries[i] = domain.TransactionEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     r.AccountID,
			LineNumber:    i + 1,
			DebitAmount:   r.DebitAmount,
			CreditAmount:  r.CreditAmount,
			Description:   r.Description,
			TaxCode:       r.TaxCode,
			TaxAmount:     r.TaxAmount,
			ProjectID:     r.ProjectID,
			CostCenterID:  r.CostCenterID,
			DepartmentID:  r.DepartmentID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return entries
}

// validateEntries runs the validation engine and wraps a rejected result.
func (s *transactionService) validateEntries(ctx context.Context, companyID string, entries []domain.TransactionEntry) error {
	result, err := s.validationSvc.Validate(ctx, companyID, entries)
	if err != nil {
		return err
	}
	if !result.IsValid {
		return &ValidationFailedError{Result: result}
	}
	if len(result.Warnings) > 0 {
		logger := middleware.GetLoggerFromCtx(ctx)
		for _, w := range result.Warnings {
			logger.Warn("Validation warning", slog.String("code", w.Code), slog.String("message", w.Message))
		}
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	return s.createTransaction(ctx, companyID, req, creatorUserID, nil)
}

func (s *transactionService) CreateTransactionForBatch(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID, batchID string) (*domain.Transaction, error) {
	return s.createTransaction(ctx, companyID, req, creatorUserID, &batchID)
}

func (s *transactionService) createTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string, batchID *string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	transactionID := uuid.NewString()
	entries := buildEntries(req.Entries, transactionID, creatorUserID, now)

	if err := s.validateEntries(ctx, companyID, entries); err != nil {
		return nil, err
	}

	exchangeRate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil {
		exchangeRate = *req.ExchangeRate
	}
	fiscalYear, fiscalPeriod := accounting.FiscalYearAndPeriod(req.TransactionDate)

	txn := domain.Transaction{
		TransactionID:        transactionID,
		CompanyID:            companyID,
		TransactionType:      req.TransactionType,
		Description:          req.Description,
		TransactionDate:      req.TransactionDate,
		FiscalYear:           fiscalYear,
		FiscalPeriod:         fiscalPeriod,
		TotalAmount:          accounting.TransactionTotal(entries),
		CurrencyCode:         req.CurrencyCode,
		ExchangeRate:         exchangeRate,
		Status:               domain.Draft,
		ApprovalStatus:       domain.ApprovalNotRequired,
		ReconciliationStatus: domain.Unreconciled,
		SourceDocumentType:   req.SourceDocumentType,
		SourceDocumentID:     req.SourceDocumentID,
		RecurringRule:        req.RecurringRule,
		BatchID:              batchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	number, err := s.txnRepo.CreateTransaction(ctx, txn, entries)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	txn.TransactionNumber = number
	txn.Entries = entries

	logger.Info("Transaction created",
		slog.String("transaction_id", transactionID),
		slog.String("transaction_number", number))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for transaction %s: %w", transactionID, err)
	}
	txn.Entries = entries
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	} else if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	txns, err := s.txnRepo.ListTransactions(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsEditable() {
		return nil, &ErrStateConflict{TransactionID: transactionID, Status: txn.Status, Operation: "update"}
	}

	now := time.Now()
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
		txn.FiscalYear, txn.FiscalPeriod = accounting.FiscalYearAndPeriod(*req.TransactionDate)
	}
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if req.Entries != nil {
		entries := buildEntries(*req.Entries, transactionID, userID, now)
		if err := s.validateEntries(ctx, companyID, entries); err != nil {
			return nil, err
		}
		txn.TotalAmount = accounting.TransactionTotal(entries)
		if err := s.txnRepo.ReplaceEntries(ctx, *txn, entries); err != nil {
			logger.Error("Failed to replace entries", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to replace entries: %w", err)
		}
		txn.Entries = entries
		return txn, nil
	}

	if err := s.txnRepo.UpdateTransactionHeader(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return s.GetTransactionByID(ctx, companyID, transactionID)
}

// PostTransaction finalizes a Draft or Pending transaction. The status flip
// and the account balance application commit in one database transaction, so
// a transaction can never be Posted without its balance effects.
func (s *transactionService) PostTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsEditable() {
		return nil, &ErrStateConflict{TransactionID: transactionID, Status: txn.Status, Operation: "post"}
	}

	// Entries may have gone stale since creation, e.g. an account was
	// deactivated. Re-validate right before the flip.
	if err := s.validateEntries(ctx, companyID, txn.Entries); err != nil {
		return nil, err
	}

	balanceChanges, err := s.balanceChangesFor(ctx, companyID, txn.Entries)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn.Status = domain.Posted
	txn.PostingDate = &now
	txn.PostedAt = &now
	txn.PostedBy = &userID
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.PostTransaction(ctx, *txn, balanceChanges); err != nil {
		logger.Error("Failed to post transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	logger.Info("Transaction posted", slog.String("transaction_id", transactionID))
	return txn, nil
}

// ReverseTransaction creates a Posted mirror-image of the original and marks
// the original Reversed in the same database transaction. The original's
// entries are never mutated.
func (s *transactionService) ReverseTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, &ErrStateConflict{TransactionID: transactionID, Status: original.Status, Operation: "reverse"}
	}
	// A reversal cannot itself be reversed; re-post the original instead.
	if original.TransactionType == domain.Reversal {
		return nil, &ErrStateConflict{TransactionID: transactionID, Status: original.Status, Operation: "reverse"}
	}

	now := time.Now()
	reversalID := uuid.NewString()

	reversal := domain.Transaction{
		TransactionID:         reversalID,
		CompanyID:             companyID,
		TransactionType:       domain.Reversal,
		Description:           fmt.Sprintf("Reversal of %s", original.TransactionNumber),
		TransactionDate:       now,
		PostingDate:           &now,
		TotalAmount:           original.TotalAmount,
		CurrencyCode:          original.CurrencyCode,
		ExchangeRate:          original.ExchangeRate,
		Status:                domain.Posted,
		ApprovalStatus:        domain.ApprovalNotRequired,
		ReconciliationStatus:  domain.Unreconciled,
		PostedAt:              &now,
		PostedBy:              &userID,
		OriginalTransactionID: &original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	reversal.FiscalYear, reversal.FiscalPeriod = accounting.FiscalYearAndPeriod(now)

	// Mirror each entry: debit becomes credit and vice versa, all analysis
	// dimensions carried over.
	entries := make([]domain.TransactionEntry, len(original.Entries))
	for i, orig := range original.Entries {
		entries[i] = domain.TransactionEntry{
			EntryID:       uuid.NewString(),
			TransactionID: reversalID,
			AccountID:     orig.AccountID,
			LineNumber:    orig.LineNumber,
			DebitAmount:   orig.CreditAmount,
			CreditAmount:  orig.DebitAmount,
			Description:   orig.Description,
			TaxCode:       orig.TaxCode,
			TaxAmount:     orig.TaxAmount,
			ProjectID:     orig.ProjectID,
			CostCenterID:  orig.CostCenterID,
			DepartmentID:  orig.DepartmentID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	balanceChanges, err := s.balanceChangesFor(ctx, companyID, entries)
	if err != nil {
		return nil, err
	}

	number, err := s.txnRepo.SaveReversal(ctx, reversal, entries, balanceChanges, original.TransactionID)
	if err != nil {
		logger.Error("Failed to save reversal", slog.String("original_transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}
	reversal.TransactionNumber = number
	reversal.Entries = entries

	logger.Info("Transaction reversed",
		slog.String("original_transaction_id", transactionID),
		slog.String("reversal_transaction_id", reversalID))
	return &reversal, nil
}

func (s *transactionService) CancelTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsEditable() {
		return nil, &ErrStateConflict{TransactionID: transactionID, Status: txn.Status, Operation: "cancel"}
	}

	now := time.Now()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, companyID, transactionID, domain.Cancelled, userID, now); err != nil {
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}
	txn.Status = domain.Cancelled
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	return txn, nil
}

// VoidTransaction voids a Posted transaction, backing its balance effects
// out atomically with the status flip. Unlike a reversal no new transaction
// is created; voiding is for entries that should never have existed.
func (s *transactionService) VoidTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.Posted {
		return nil, &ErrStateConflict{TransactionID: transactionID, Status: txn.Status, Operation: "void"}
	}

	balanceChanges, err := s.balanceChangesFor(ctx, companyID, txn.Entries)
	if err != nil {
		return nil, err
	}
	// Negate the original application to back the effects out.
	for accountID, change := range balanceChanges {
		balanceChanges[accountID] = change.Neg()
	}

	now := time.Now()
	txn.Status = domain.Voided
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.VoidTransaction(ctx, *txn, balanceChanges); err != nil {
		logger.Error("Failed to void transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to void transaction: %w", err)
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return err
	}
	switch txn.Status {
	case domain.Draft, domain.Pending, domain.Cancelled:
	default:
		return &ErrStateConflict{TransactionID: transactionID, Status: txn.Status, Operation: "delete"}
	}
	return s.txnRepo.DeleteTransaction(ctx, companyID, transactionID)
}

// balanceChangesFor computes the signed per-account effect of an entry set
// using each account's type.
func (s *transactionService) balanceChangesFor(ctx context.Context, companyID string, entries []domain.TransactionEntry) (map[string]decimal.Decimal, error) {
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, uniqueAccountIDs(entries))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for balance calculation: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accountsMap))
	for id, acc := range accountsMap {
		accountTypes[id] = acc.AccountType
	}
	changes, err := accounting.BalanceChanges(entries, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate balance changes: %w", err)
	}
	return changes, nil
}
