package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for the audit trail.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

// CreateAuditLog appends one audit trail row. Changes are stored as JSONB.
func (r *PgxAuditLogRepository) CreateAuditLog(ctx context.Context, entry domain.AuditLog) error {
	var changes []byte
	if entry.Changes != nil {
		var err error
		changes, err = json.Marshal(entry.Changes)
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal audit changes", err)
		}
	}

	query := `
		INSERT INTO audit_logs (audit_id, user_id, module, action, record_id, changes, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.AuditID, entry.User, entry.Module, entry.Action, entry.RecordID, changes, entry.At,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+entry.AuditID, err)
	}
	return nil
}
