package domain

// Account represents a cash account that payments are received into.
// Accounts are flat reference data; the ledger only cares about the
// currency (payments must match it) and the active flag.
type Account struct {
	AccountID    string `json:"accountID"`    // Primary Key (UUID)
	Name         string `json:"name"`         // User-defined name
	CurrencyCode string `json:"currencyCode"` // ISO code, e.g. "EUR" (Not Null)
	IsActive     bool   `json:"isActive"`
	AuditFields
}
