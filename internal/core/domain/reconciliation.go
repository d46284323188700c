package domain

import (
	"github.com/shopspring/decimal"
)

// ReconciliationMatch is an ephemeral proposal pairing an unreconciled
// transaction with an external statement line. MatchConfidence is a
// heuristic score in [0,1], not an exact measure.
type ReconciliationMatch struct {
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	MatchConfidence   float64         `json:"matchConfidence"`
	DateDifference    int             `json:"dateDifference"` // days between statement and transaction date
	Description       string          `json:"description"`
}

// ReconciliationSummary reports the outcome of a bulk reconcile call.
type ReconciliationSummary struct {
	AccountID       string   `json:"accountID"`
	ReconciledCount int      `json:"reconciledCount"`
	TransactionIDs  []string `json:"transactionIDs"`
}
