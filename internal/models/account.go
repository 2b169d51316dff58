package models

// Account is the row shape of the accounts table.
type Account struct {
	AccountID    string
	Name         string
	CurrencyCode string
	IsActive     bool
	AuditFields
}
