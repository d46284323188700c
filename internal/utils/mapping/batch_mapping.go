package mapping

import (
	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/finbooks/ledger-engine/internal/models"
)

// ToModelBatch converts a domain BatchTransaction to its persistence model.
func ToModelBatch(d domain.BatchTransaction) models.BatchTransaction {
	return models.BatchTransaction{
		BatchID:               d.BatchID,
		BatchNumber:           d.BatchNumber,
		CompanyID:             d.CompanyID,
		Name:                  d.Name,
		Description:           d.Description,
		Status:                string(d.Status),
		TotalTransactions:     d.TotalTransactions,
		SuccessCount:          d.SuccessCount,
		TotalAmount:           d.TotalAmount,
		ProcessingStartedAt:   d.ProcessingStartedAt,
		ProcessingCompletedAt: d.ProcessingCompletedAt,
		ErrorMessage:          d.ErrorMessage,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a model BatchTransaction to its domain form.
func ToDomainBatch(m models.BatchTransaction) domain.BatchTransaction {
	return domain.BatchTransaction{
		BatchID:               m.BatchID,
		BatchNumber:           m.BatchNumber,
		CompanyID:             m.CompanyID,
		Name:                  m.Name,
		Description:           m.Description,
		Status:                domain.BatchStatus(m.Status),
		TotalTransactions:     m.TotalTransactions,
		SuccessCount:          m.SuccessCount,
		TotalAmount:           m.TotalAmount,
		ProcessingStartedAt:   m.ProcessingStartedAt,
		ProcessingCompletedAt: m.ProcessingCompletedAt,
		ErrorMessage:          m.ErrorMessage,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
