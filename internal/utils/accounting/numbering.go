package accounting

import (
	"fmt"

	"github.com/finbooks/ledger-engine/internal/core/domain"
)

// documentPrefixes maps each transaction type to the short code embedded in
// its document number.
var documentPrefixes = map[domain.TransactionType]string{
	domain.JournalEntry:   "JE",
	domain.Invoice:        "INV",
	domain.Payment:        "PAY",
	domain.Receipt:        "RCT",
	domain.Adjustment:     "ADJ",
	domain.Transfer:       "TRF",
	domain.Depreciation:   "DEP",
	domain.Accrual:        "ACR",
	domain.Reversal:       "REV",
	domain.OpeningBalance: "OPN",
	domain.ClosingEntry:   "CLS",
}

// BatchPrefix is the document prefix for batch numbers.
const BatchPrefix = "BAT"

// DocumentPrefix returns the number prefix for a transaction type, falling
// back to the journal entry prefix for unknown types.
func DocumentPrefix(txnType domain.TransactionType) string {
	if p, ok := documentPrefixes[txnType]; ok {
		return p
	}
	return documentPrefixes[domain.JournalEntry]
}

// FormatDocumentNumber renders a document number as <PREFIX><YEAR><NNNNNN>,
// e.g. JE2025000042.
func FormatDocumentNumber(prefix string, year int, value int64) string {
	return fmt.Sprintf("%s%d%06d", prefix, year, value)
}
