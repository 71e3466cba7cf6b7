package repositories

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// AuditLogRepository appends entries to the cross-cutting audit trail.
// Callers treat writes as fire-and-forget; errors are logged, never
// propagated into the business transaction.
type AuditLogRepository interface {
	CreateAuditLog(ctx context.Context, entry domain.AuditLog) error
}
