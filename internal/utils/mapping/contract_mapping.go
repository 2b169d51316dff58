package mapping

import (
	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/models"
)

// ToModelContract converts a domain Contract to a model Contract
func ToModelContract(d domain.Contract) models.Contract {
	return models.Contract{
		ContractID:       d.ContractID,
		PropertyID:       d.PropertyID,
		Address:          d.Address,
		TenantName:       d.TenantName,
		RentAmount:       d.RentAmount,
		CurrencyCode:     d.CurrencyCode,
		DueDay:           d.DueDay,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		DepositEnabled:   d.DepositEnabled,
		AdvanceEnabled:   d.AdvanceEnabled,
		Status:           models.ContractStatus(d.Status),
		ParentContractID: d.ParentContractID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContract converts a model Contract to a domain Contract
func ToDomainContract(m models.Contract) domain.Contract {
	return domain.Contract{
		ContractID:       m.ContractID,
		PropertyID:       m.PropertyID,
		Address:          m.Address,
		TenantName:       m.TenantName,
		RentAmount:       m.RentAmount,
		CurrencyCode:     m.CurrencyCode,
		DueDay:           m.DueDay,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		DepositEnabled:   m.DepositEnabled,
		AdvanceEnabled:   m.AdvanceEnabled,
		Status:           domain.ContractStatus(m.Status),
		ParentContractID: m.ParentContractID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
