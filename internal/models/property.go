package models

// Property is the row shape of the properties table.
type Property struct {
	PropertyID string
	Address    string
	IsActive   bool
	AuditFields
}
