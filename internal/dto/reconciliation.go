package dto

import (
	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FindMatchesParams are the query parameters for match proposals.
type FindMatchesParams struct {
	AccountID     string          `form:"accountID" binding:"required"`
	StatementDate string          `form:"statementDate" binding:"required"` // YYYY-MM-DD
	Tolerance     decimal.Decimal `form:"tolerance"`
}

// ReconcileRequest bulk-marks transactions as reconciled against a statement.
type ReconcileRequest struct {
	AccountID      string   `json:"accountID" binding:"required"`
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// MatchResponse is one proposed statement match.
type MatchResponse struct {
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	MatchConfidence   float64         `json:"matchConfidence"`
	DateDifference    int             `json:"dateDifference"`
	Description       string          `json:"description,omitempty"`
}

// FindMatchesResponse wraps the proposed matches.
type FindMatchesResponse struct {
	Matches []MatchResponse `json:"matches"`
}

// ReconciliationSummaryResponse reports a bulk reconcile outcome.
type ReconciliationSummaryResponse struct {
	AccountID       string   `json:"accountID"`
	ReconciledCount int      `json:"reconciledCount"`
	TransactionIDs  []string `json:"transactionIDs"`
}

// ToMatchResponses converts proposed domain matches.
func ToMatchResponses(matches []domain.ReconciliationMatch) []MatchResponse {
	responses := make([]MatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = MatchResponse{
			TransactionID:     m.TransactionID,
			TransactionNumber: m.TransactionNumber,
			TransactionAmount: m.TransactionAmount,
			MatchConfidence:   m.MatchConfidence,
			DateDifference:    m.DateDifference,
			Description:       m.Description,
		}
	}
	return responses
}

// ToReconciliationSummaryResponse converts a domain summary.
func ToReconciliationSummaryResponse(s *domain.ReconciliationSummary) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		AccountID:       s.AccountID,
		ReconciledCount: s.ReconciledCount,
		TransactionIDs:  s.TransactionIDs,
	}
}
