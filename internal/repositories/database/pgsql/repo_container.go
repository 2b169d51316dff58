package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(pool),
		PropertyRepo:  newPgxPropertyRepository(pool),
		ContractRepo:  newPgxContractRepository(pool),
		AccrualRepo:   newPgxAccrualRepository(pool),
		PaymentRepo:   newPgxPaymentRepository(pool),
		ReportingRepo: newPgxReportingRepository(pool),
	}
}
