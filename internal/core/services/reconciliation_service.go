package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
)

// matchWindowDays bounds proposed matches to transactions dated within this
// many days of the statement date, on either side.
const matchWindowDays = 30

// matchConfidence is the heuristic score assigned to every proposal. Scoring
// by amount and date proximity is a possible refinement; a flat score keeps
// proposals explainable for now.
const matchConfidence = 0.75

// reconciliationService proposes statement matches and commits bulk
// reconciliations.
type reconciliationService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewReconciliationService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) FindMatches(ctx context.Context, companyID string, params dto.FindMatchesParams) ([]domain.ReconciliationMatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statementDate, err := time.Parse("2006-01-02", params.StatementDate)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest,
			fmt.Sprintf("invalid statement date %q, expected YYYY-MM-DD", params.StatementDate), apperrors.ErrValidation)
	}

	// The account must exist in the company before proposing anything.
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, params.AccountID); err != nil {
		return nil, err
	}

	from := statementDate.AddDate(0, 0, -matchWindowDays)
	to := statementDate.AddDate(0, 0, matchWindowDays)

	txns, err := s.txnRepo.FindUnreconciledByAccount(ctx, companyID, params.AccountID, from, to)
	if err != nil {
		logger.Error("Failed to fetch unreconciled transactions",
			slog.String("account_id", params.AccountID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch unreconciled transactions: %w", err)
	}

	matches := make([]domain.ReconciliationMatch, 0, len(txns))
	for _, txn := range txns {
		if txn.TotalAmount.Abs().LessThan(params.Tolerance) {
			continue
		}
		dateDiff := int(statementDate.Sub(txn.TransactionDate).Hours() / 24)
		if dateDiff < 0 {
			dateDiff = -dateDiff
		}
		matches = append(matches, domain.ReconciliationMatch{
			TransactionID:     txn.TransactionID,
			TransactionNumber: txn.TransactionNumber,
			TransactionAmount: txn.TotalAmount,
			MatchConfidence:   matchConfidence,
			DateDifference:    dateDiff,
			Description:       txn.Description,
		})
	}

	logger.Info("Match proposals computed",
		slog.String("account_id", params.AccountID),
		slog.Int("candidates", len(txns)),
		slog.Int("matches", len(matches)))
	return matches, nil
}

// Reconcile bulk-marks the named transactions reconciled. The operation is
// idempotent: transactions already reconciled are skipped silently and do
// not count toward the reported total.
func (s *reconciliationService) Reconcile(ctx context.Context, companyID string, req dto.ReconcileRequest, userID string) (*domain.ReconciliationSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	count, err := s.txnRepo.MarkReconciled(ctx, companyID, req.TransactionIDs, userID, now)
	if err != nil {
		logger.Error("Failed to mark transactions reconciled",
			slog.String("account_id", req.AccountID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mark transactions reconciled: %w", err)
	}

	logger.Info("Transactions reconciled",
		slog.String("account_id", req.AccountID),
		slog.Int("requested", len(req.TransactionIDs)),
		slog.Int("reconciled", count))
	return &domain.ReconciliationSummary{
		AccountID:       req.AccountID,
		ReconciledCount: count,
		TransactionIDs:  req.TransactionIDs,
	}, nil
}
