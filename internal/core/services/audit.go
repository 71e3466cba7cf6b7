package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// writeAudit appends an audit trail entry. Fire-and-forget: failures are
// logged and never propagated, so a broken audit store cannot block business
// writes. The context is detached from the request so an aborted request
// cannot cancel the write.
func writeAudit(ctx context.Context, auditRepo portsrepo.AuditLogRepository, actor domain.Actor, module, action, recordID string, changes map[string]any) {
	if auditRepo == nil {
		return
	}

	entry := domain.AuditLog{
		AuditID:  uuid.NewString(),
		User:     actor.UserID,
		Module:   module,
		Action:   action,
		RecordID: recordID,
		Changes:  changes,
		At:       time.Now(),
	}

	if err := auditRepo.CreateAuditLog(context.WithoutCancel(ctx), entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to write audit log entry",
			slog.String("module", module),
			slog.String("action", action),
			slog.String("record_id", recordID),
			slog.String("error", err.Error()),
		)
	}
}
