package services

import (
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
)

// NewServiceContainer wires all application services from their repositories.
// dueSoonDays configures the status engine's "due soon" horizon.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, dueSoonDays int) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.AccountRepo),
		Property:   NewPropertyService(repos.PropertyRepo),
		Contract:   NewContractService(repos.ContractRepo, repos.PropertyRepo),
		Accrual:    NewAccrualService(repos.AccrualRepo, repos.ContractRepo, dueSoonDays),
		Allocation: NewAllocationService(repos.PaymentRepo, repos.AccrualRepo, repos.AccountRepo, dueSoonDays),
		Reporting:  NewReportingService(repos.ReportingRepo, dueSoonDays),
	}
}
