package mapping

import (
	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		AccountID:       d.AccountID,
		PaymentDate:     d.PaymentDate,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Comment:         d.Comment,
		CancelledAt:     d.CancelledAt,
		AllocatedAmount: d.AllocatedAmount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		AccountID:       m.AccountID,
		PaymentDate:     m.PaymentDate,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Comment:         m.Comment,
		CancelledAt:     m.CancelledAt,
		AllocatedAmount: m.AllocatedAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocation converts a domain Allocation to a model Allocation
func ToModelAllocation(d domain.Allocation) models.Allocation {
	return models.Allocation{
		AllocationID: d.AllocationID,
		PaymentID:    d.PaymentID,
		AccrualID:    d.AccrualID,
		Amount:       d.Amount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllocation converts a model Allocation to a domain Allocation
func ToDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		PaymentID:    m.PaymentID,
		AccrualID:    m.AccrualID,
		Amount:       m.Amount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
