package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/finbooks/ledger-engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// validationService enforces the double-entry invariants on candidate entry
// sets. Rules run in order and every violation is collected; nothing
// short-circuits, so a caller sees all problems in one pass.
type validationService struct {
	accountRepo          portsrepo.AccountRepositoryFacade
	largeAmountThreshold decimal.Decimal
}

// NewValidationService creates the validation engine. threshold is the
// non-blocking large-amount warning limit.
func NewValidationService(accountRepo portsrepo.AccountRepositoryFacade, threshold decimal.Decimal) portssvc.ValidationSvcFacade {
	return &validationService{
		accountRepo:          accountRepo,
		largeAmountThreshold: threshold,
	}
}

var _ portssvc.ValidationSvcFacade = (*validationService)(nil)

// Validate checks a candidate entry set for the company. The returned error
// is non-nil only for storage failures during account lookup; rule
// violations are reported inside the ValidationResult.
func (s *validationService) Validate(ctx context.Context, companyID string, entries []domain.TransactionEntry) (*domain.ValidationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := &domain.ValidationResult{IsValid: true}

	if len(entries) < 2 {
		result.AddError("entries", domain.CodeMinEntriesRequired,
			"a transaction requires at least two entries",
			strconv.Itoa(len(entries)))
	}

	for i, entry := range entries {
		field := fmt.Sprintf("entries[%d]", i)
		hasDebit := entry.DebitAmount.IsPositive()
		hasCredit := entry.CreditAmount.IsPositive()
		switch {
		case hasDebit && hasCredit:
			result.AddError(field, domain.CodeBothDebitCredit,
				"an entry must carry either a debit or a credit amount, not both",
				fmt.Sprintf("debit=%s credit=%s", entry.DebitAmount.String(), entry.CreditAmount.String()))
		case !hasDebit && !hasCredit:
			result.AddError(field, domain.CodeNoAmount,
				"an entry must carry a positive debit or credit amount",
				fmt.Sprintf("debit=%s credit=%s", entry.DebitAmount.String(), entry.CreditAmount.String()))
		}
	}

	// Account usability checks run off one batched read-only lookup.
	accountIDs := uniqueAccountIDs(entries)
	if len(accountIDs) > 0 {
		accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
		if err != nil {
			logger.Error("Failed to fetch accounts for validation",
				slog.String("company_id", companyID),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}

		for i, entry := range entries {
			field := fmt.Sprintf("entries[%d].accountID", i)
			acc, found := accountsMap[entry.AccountID]
			if !found {
				result.AddError(field, domain.CodeAccountNotFound,
					"account does not exist in this company", entry.AccountID)
				continue
			}
			if !acc.AllowDirectTransactions {
				result.AddError(field, domain.CodeAccountNoDirectTransactions,
					"account does not allow direct transactions", entry.AccountID)
			}
			if acc.Status == domain.AccountInactive {
				result.AddError(field, domain.CodeAccountInactive,
					"account is inactive", entry.AccountID)
			}
		}
	}

	debits, credits := accounting.EntryTotals(entries)
	if !debits.Equal(credits) {
		diff := debits.Sub(credits)
		result.AddError("entries", domain.CodeUnbalancedEntries,
			fmt.Sprintf("debits (%s) do not equal credits (%s), difference %s",
				debits.String(), credits.String(), diff.String()),
			diff.String())
	}

	if debits.GreaterThan(s.largeAmountThreshold) {
		result.AddWarning("entries", domain.CodeLargeAmount,
			fmt.Sprintf("transaction total %s exceeds the large-amount threshold %s",
				debits.String(), s.largeAmountThreshold.String()),
			debits.String())
	}

	return result, nil
}

// uniqueAccountIDs returns the distinct account IDs referenced by the entries.
func uniqueAccountIDs(entries []domain.TransactionEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; !ok {
			seen[e.AccountID] = struct{}{}
			ids = append(ids, e.AccountID)
		}
	}
	return ids
}
