package dto

import (
	"time"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest groups transaction-creation requests for asynchronous
// processing.
type CreateBatchRequest struct {
	Name         string                     `json:"name" binding:"required"`
	Description  string                     `json:"description"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// BatchResponse is the outward shape of a batch record.
type BatchResponse struct {
	BatchID           string          `json:"batchID"`
	BatchNumber       string          `json:"batchNumber"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Status            string          `json:"status"`
	TotalTransactions int             `json:"totalTransactions"`
	SuccessCount      int             `json:"successCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`

	ProcessingStartedAt   *time.Time `json:"processingStartedAt,omitempty"`
	ProcessingCompletedAt *time.Time `json:"processingCompletedAt,omitempty"`
	ErrorMessage          string     `json:"errorMessage,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	CreatedBy             string     `json:"createdBy"`

	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

// ToBatchResponse converts a domain batch (optionally with its created
// transactions) to the response DTO.
func ToBatchResponse(b *domain.BatchTransaction, txns []domain.Transaction) BatchResponse {
	resp := BatchResponse{
		BatchID:               b.BatchID,
		BatchNumber:           b.BatchNumber,
		Name:                  b.Name,
		Description:           b.Description,
		Status:                string(b.Status),
		TotalTransactions:     b.TotalTransactions,
		SuccessCount:          b.SuccessCount,
		TotalAmount:           b.TotalAmount,
		ProcessingStartedAt:   b.ProcessingStartedAt,
		ProcessingCompletedAt: b.ProcessingCompletedAt,
		ErrorMessage:          b.ErrorMessage,
		CreatedAt:             b.CreatedAt,
		CreatedBy:             b.CreatedBy,
	}
	if len(txns) > 0 {
		resp.Transactions = ToTransactionResponses(txns)
	}
	return resp
}
