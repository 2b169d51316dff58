package domain

// Property is a rentable unit that contracts may reference. Reporting groups
// accruals by property, falling back to the contract address when a contract
// has no property attached.
type Property struct {
	PropertyID string `json:"propertyID"` // Primary Key (UUID)
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
