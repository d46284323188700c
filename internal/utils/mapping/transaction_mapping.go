package mapping

import (
	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/finbooks/ledger-engine/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Field lists are intentionally exhaustive so that a new column cannot be
// silently dropped on either side.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		TransactionNumber:      d.TransactionNumber,
		CompanyID:              d.CompanyID,
		TransactionType:        models.TransactionType(d.TransactionType),
		Description:            d.Description,
		TransactionDate:        d.TransactionDate,
		PostingDate:            d.PostingDate,
		FiscalYear:             d.FiscalYear,
		FiscalPeriod:           d.FiscalPeriod,
		TotalAmount:            d.TotalAmount,
		CurrencyCode:           d.CurrencyCode,
		ExchangeRate:           d.ExchangeRate,
		Status:                 models.TransactionStatus(d.Status),
		ApprovalStatus:         string(d.ApprovalStatus),
		ReconciliationStatus:   string(d.ReconciliationStatus),
		ReconciledAt:           d.ReconciledAt,
		ReconciledBy:           d.ReconciledBy,
		PostedAt:               d.PostedAt,
		PostedBy:               d.PostedBy,
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		SourceDocumentType:     d.SourceDocumentType,
		SourceDocumentID:       d.SourceDocumentID,
		RecurringRule:          d.RecurringRule,
		BatchID:                d.BatchID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		TransactionNumber:      m.TransactionNumber,
		CompanyID:              m.CompanyID,
		TransactionType:        domain.TransactionType(m.TransactionType),
		Description:            m.Description,
		TransactionDate:        m.TransactionDate,
		PostingDate:            m.PostingDate,
		FiscalYear:             m.FiscalYear,
		FiscalPeriod:           m.FiscalPeriod,
		TotalAmount:            m.TotalAmount,
		CurrencyCode:           m.CurrencyCode,
		ExchangeRate:           m.ExchangeRate,
		Status:                 domain.TransactionStatus(m.Status),
		ApprovalStatus:         domain.ApprovalStatus(m.ApprovalStatus),
		ReconciliationStatus:   domain.ReconciliationStatus(m.ReconciliationStatus),
		ReconciledAt:           m.ReconciledAt,
		ReconciledBy:           m.ReconciledBy,
		PostedAt:               m.PostedAt,
		PostedBy:               m.PostedBy,
		OriginalTransactionID:  m.OriginalTransactionID,
		ReversingTransactionID: m.ReversingTransactionID,
		SourceDocumentType:     m.SourceDocumentType,
		SourceDocumentID:       m.SourceDocumentID,
		RecurringRule:          m.RecurringRule,
		BatchID:                m.BatchID,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain TransactionEntry to its persistence model.
func ToModelEntry(d domain.TransactionEntry) models.TransactionEntry {
	return models.TransactionEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		LineNumber:    d.LineNumber,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		Description:   d.Description,
		TaxCode:       d.TaxCode,
		TaxAmount:     d.TaxAmount,
		ProjectID:     d.ProjectID,
		CostCenterID:  d.CostCenterID,
		DepartmentID:  d.DepartmentID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model TransactionEntry to its domain form.
func ToDomainEntry(m models.TransactionEntry) domain.TransactionEntry {
	return domain.TransactionEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		LineNumber:    m.LineNumber,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		Description:   m.Description,
		TaxCode:       m.TaxCode,
		TaxAmount:     m.TaxAmount,
		ProjectID:     m.ProjectID,
		CostCenterID:  m.CostCenterID,
		DepartmentID:  m.DepartmentID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries.
func ToDomainEntrySlice(ms []models.TransactionEntry) []domain.TransactionEntry {
	ds := make([]domain.TransactionEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
