package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus mirrors domain.ContractStatus at the storage boundary.
type ContractStatus string

// Contract is the row shape of the contracts table.
type Contract struct {
	ContractID       string
	PropertyID       *string
	Address          string
	TenantName       string
	RentAmount       decimal.Decimal
	CurrencyCode     string
	DueDay           int
	StartDate        time.Time
	EndDate          time.Time
	DepositEnabled   bool
	AdvanceEnabled   bool
	Status           ContractStatus
	ParentContractID *string
	AuditFields
}
