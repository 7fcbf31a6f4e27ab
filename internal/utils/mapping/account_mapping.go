package mapping

import (
	"github.com/barengs/smpt-sub000/internal/core/domain"
	"github.com/barengs/smpt-sub000/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber:  d.AccountNumber,
		OwnerReference: d.OwnerReference,
		Balance:        d.Balance,
		Status:         models.AccountStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber:  m.AccountNumber,
		OwnerReference: m.OwnerReference,
		Balance:        m.Balance,
		Status:         domain.AccountStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
