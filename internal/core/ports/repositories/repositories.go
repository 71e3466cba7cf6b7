// Package repositories defines the persistence ports consumed by the
// services layer.
package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	CounterRepo CounterRepository
	JournalRepo JournalRepositoryFacade
	OrderRepo   OrderRepositoryFacade
	VoucherRepo VoucherRepositoryFacade
	AuditRepo   AuditLogRepository
}
