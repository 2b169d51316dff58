package mapping

import (
	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/models"
)

// ToModelAccrual converts a domain Accrual to a model Accrual
func ToModelAccrual(d domain.Accrual) models.Accrual {
	return models.Accrual{
		AccrualID:       d.AccrualID,
		ContractID:      d.ContractID,
		PeriodStart:     d.PeriodStart,
		PeriodEnd:       d.PeriodEnd,
		DueDate:         d.DueDate,
		BaseAmount:      d.BaseAmount,
		Adjustments:     d.Adjustments,
		UtilitiesAmount: d.UtilitiesAmount,
		UtilityType:     string(d.UtilityType),
		CurrencyCode:    d.CurrencyCode,
		Comment:         d.Comment,
		FinalAmount:     d.FinalAmount,
		PaidAmount:      d.PaidAmount,
		Status:          models.AccrualStatus(d.Status),
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccrual converts a model Accrual to a domain Accrual
func ToDomainAccrual(m models.Accrual) domain.Accrual {
	return domain.Accrual{
		AccrualID:       m.AccrualID,
		ContractID:      m.ContractID,
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		DueDate:         m.DueDate,
		BaseAmount:      m.BaseAmount,
		Adjustments:     m.Adjustments,
		UtilitiesAmount: m.UtilitiesAmount,
		UtilityType:     domain.UtilityType(m.UtilityType),
		CurrencyCode:    m.CurrencyCode,
		Comment:         m.Comment,
		FinalAmount:     m.FinalAmount,
		PaidAmount:      m.PaidAmount,
		Status:          domain.AccrualStatus(m.Status),
		Version:         m.Version,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
