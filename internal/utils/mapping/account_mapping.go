package mapping

import (
	"github.com/finbooks/ledger-engine/internal/core/domain"
	"github.com/finbooks/ledger-engine/internal/models"
)

// ToDomainAccount converts a model Account to its domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:               m.AccountID,
		CompanyID:               m.CompanyID,
		AccountCode:             m.AccountCode,
		Name:                    m.Name,
		AccountType:             domain.AccountType(m.AccountType),
		CurrencyCode:            m.CurrencyCode,
		AllowDirectTransactions: m.AllowDirectTransactions,
		Status:                  domain.AccountStatus(m.Status),
		CurrentBalance:          m.CurrentBalance,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}
