package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	counterRepo := newPgxCounterRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	auditRepo := newPgxAuditLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CounterRepo: counterRepo,
		JournalRepo: journalRepo,
		OrderRepo:   orderRepo,
		VoucherRepo: voucherRepo,
		AuditRepo:   auditRepo,
	}
}
