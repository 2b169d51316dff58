package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus indicates the lifecycle state of a lease contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "DRAFT"
	ContractActive    ContractStatus = "ACTIVE"
	ContractEnded     ContractStatus = "ENDED"
	ContractCancelled ContractStatus = "CANCELLED"
)

// Contract represents a lease: who pays how much rent, in which currency,
// on which day of the month, over which term. A contract owns its accruals;
// deleting a contract cascades to them.
type Contract struct {
	ContractID       string          `json:"contractID"` // Primary Key (UUID)
	PropertyID       *string         `json:"propertyID"` // Nullable FK -> properties.property_id
	Address          string          `json:"address"`    // Grouping fallback when PropertyID is nil
	TenantName       string          `json:"tenantName"` // Display only, never interpreted
	RentAmount       decimal.Decimal `json:"rentAmount"`
	CurrencyCode     string          `json:"currencyCode"`
	DueDay           int             `json:"dueDay"` // 1..31, clamped to month length during generation
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	DepositEnabled   bool            `json:"depositEnabled"`
	AdvanceEnabled   bool            `json:"advanceEnabled"`
	Status           ContractStatus  `json:"status"`
	ParentContractID *string         `json:"parentContractID"` // Set on contracts created by prolongation
	AuditFields
}
