package accounting

import (
	"testing"
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(accountID string, debit, credit int64) domain.TransactionEntry {
	return domain.TransactionEntry{
		AccountID:    accountID,
		DebitAmount:  decimal.NewFromInt(debit),
		CreditAmount: decimal.NewFromInt(credit),
	}
}

func TestEntryTotals(t *testing.T) {
	entries := []domain.TransactionEntry{
		entry("a", 100, 0),
		entry("b", 50, 0),
		entry("c", 0, 150),
	}

	debits, credits := EntryTotals(entries)
	assert.True(t, debits.Equal(decimal.NewFromInt(150)), "debit total should be 150")
	assert.True(t, credits.Equal(decimal.NewFromInt(150)), "credit total should be 150")
}

func TestEntryTotals_ExactDecimals(t *testing.T) {
	// 0.1 + 0.2 must equal 0.3 exactly, no float drift.
	entries := []domain.TransactionEntry{
		{AccountID: "a", DebitAmount: decimal.RequireFromString("0.1")},
		{AccountID: "b", DebitAmount: decimal.RequireFromString("0.2")},
		{AccountID: "c", CreditAmount: decimal.RequireFromString("0.3")},
	}

	debits, credits := EntryTotals(entries)
	assert.True(t, debits.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, debits.Equal(credits))
}

func TestTransactionTotal(t *testing.T) {
	entries := []domain.TransactionEntry{
		entry("a", 100, 0),
		entry("b", 0, 60),
		entry("c", 0, 40),
	}

	total := TransactionTotal(entries)
	assert.True(t, total.Equal(decimal.NewFromInt(100)), "total should equal one balanced side")
}

func TestCalculateSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		entry       domain.TransactionEntry
		accountType domain.AccountType
		want        int64
	}{
		{"debit raises asset", entry("a", 100, 0), domain.Asset, 100},
		{"credit lowers asset", entry("a", 0, 100), domain.Asset, -100},
		{"debit raises expense", entry("a", 100, 0), domain.Expense, 100},
		{"credit raises liability", entry("a", 0, 100), domain.Liability, 100},
		{"debit lowers liability", entry("a", 100, 0), domain.Liability, -100},
		{"credit raises equity", entry("a", 0, 100), domain.Equity, 100},
		{"credit raises revenue", entry("a", 0, 100), domain.Revenue, 100},
		{"debit lowers revenue", entry("a", 100, 0), domain.Revenue, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSignedAmount(tt.entry, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

func TestCalculateSignedAmount_UnknownType(t *testing.T) {
	_, err := CalculateSignedAmount(entry("a", 100, 0), domain.AccountType("WEIRD"))
	assert.Error(t, err)
}

func TestBalanceChanges_AggregatesPerAccount(t *testing.T) {
	entries := []domain.TransactionEntry{
		entry("cash", 100, 0),
		entry("cash", 0, 30),
		entry("revenue", 0, 70),
	}
	accountTypes := map[string]domain.AccountType{
		"cash":    domain.Asset,
		"revenue": domain.Revenue,
	}

	changes, err := BalanceChanges(entries, accountTypes)
	require.NoError(t, err)
	assert.True(t, changes["cash"].Equal(decimal.NewFromInt(70)))
	assert.True(t, changes["revenue"].Equal(decimal.NewFromInt(70)))
}

func TestBalanceChanges_MissingAccountType(t *testing.T) {
	entries := []domain.TransactionEntry{entry("mystery", 100, 0)}

	_, err := BalanceChanges(entries, map[string]domain.AccountType{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestFiscalYearAndPeriod(t *testing.T) {
	year, period := FiscalYearAndPeriod(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, year)
	assert.Equal(t, 11, period)
}

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "JE2025000042", FormatDocumentNumber("JE", 2025, 42))
	assert.Equal(t, "INV2026000001", FormatDocumentNumber("INV", 2026, 1))
	// Values past six digits widen rather than truncate.
	assert.Equal(t, "BAT20251000000", FormatDocumentNumber("BAT", 2025, 1000000))
}

func TestDocumentPrefix(t *testing.T) {
	assert.Equal(t, "REV", DocumentPrefix(domain.Reversal))
	assert.Equal(t, "PAY", DocumentPrefix(domain.Payment))
	// Unknown types fall back to the journal entry prefix.
	assert.Equal(t, "JE", DocumentPrefix(domain.TransactionType("SOMETHING_NEW")))
}
