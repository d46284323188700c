package accounting

import (
	"fmt"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryTotals sums the debit and credit sides of an entry set using exact
// decimal arithmetic.
func EntryTotals(entries []domain.TransactionEntry) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
	}
	return debits, credits
}

// TransactionTotal computes the economic value of a balanced entry set: half
// the sum of both sides, which for a balanced set equals the debit total.
func TransactionTotal(entries []domain.TransactionEntry) decimal.Decimal {
	debits, credits := EntryTotals(entries)
	return debits.Add(credits).Div(decimal.NewFromInt(2))
}

// FiscalYearAndPeriod derives the fiscal year and period (calendar month)
// from a transaction date.
func FiscalYearAndPeriod(transactionDate time.Time) (year int, period int) {
	return transactionDate.Year(), int(transactionDate.Month())
}

// CalculateSignedAmount applies the accounting sign convention to an entry's
// amount based on the account type, for account balance application.
// DEBIT to ASSET/EXPENSE increases the balance; CREDIT decreases it.
// For LIABILITY/EQUITY/REVENUE the convention is inverted.
func CalculateSignedAmount(entry domain.TransactionEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := entry.Amount()
	isDebit := entry.IsDebit()

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, entry.AccountID)
	}
	return signedAmount, nil
}

// BalanceChanges aggregates the signed per-account effect of an entry set.
func BalanceChanges(entries []domain.TransactionEntry, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accountTypes))
	for _, e := range entries {
		accountType, ok := accountTypes[e.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", e.AccountID)
		}
		signed, err := CalculateSignedAmount(e, accountType)
		if err != nil {
			return nil, err
		}
		changes[e.AccountID] = changes[e.AccountID].Add(signed)
	}
	return changes, nil
}
