package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

type PgxCounterRepository struct {
	BaseRepository
}

// newPgxCounterRepository creates a new repository for sequence counters.
func newPgxCounterRepository(pool *pgxpool.Pool) portsrepo.CounterRepository {
	return &PgxCounterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CounterRepository = (*PgxCounterRepository)(nil)

// IncrementAndGet bumps the scope's counter by count and returns the new
// value as a single statement. The upsert makes first use and subsequent use
// the same round trip, and the row write is atomic, so concurrent callers
// always observe disjoint ranges.
//
// Deliberately run against the pool, never inside a business transaction: a
// rolled-back document must not roll back the counter, otherwise a
// concurrent allocation from the same pre-rollback value would duplicate
// numbers.
func (r *PgxCounterRepository) IncrementAndGet(ctx context.Context, scopeKey string, count int64) (int64, error) {
	query := `
		INSERT INTO counters (scope_key, seq, last_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope_key)
		DO UPDATE SET seq = counters.seq + EXCLUDED.seq, last_updated_at = EXCLUDED.last_updated_at
		RETURNING seq;
	`
	var newValue int64
	err := r.Pool.QueryRow(ctx, query, scopeKey, count, time.Now()).Scan(&newValue)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to increment counter "+scopeKey, err)
	}
	return newValue, nil
}

// Decrement hands numbers back after a failed document persist, clamped at
// zero. Only correct when no later allocation happened under the scope; the
// caller accepts a gap when that race is lost.
func (r *PgxCounterRepository) Decrement(ctx context.Context, scopeKey string, count int64) error {
	query := `
		UPDATE counters
		SET seq = GREATEST(seq - $2, 0), last_updated_at = $3
		WHERE scope_key = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, scopeKey, count, time.Now())
	if err != nil {
		return apperrors.NewAppError(500, "failed to decrement counter "+scopeKey, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("counter " + scopeKey + " not found")
	}
	return nil
}

// FindCounter retrieves the current counter state for a scope.
func (r *PgxCounterRepository) FindCounter(ctx context.Context, scopeKey string) (*domain.Counter, error) {
	query := `
		SELECT scope_key, seq, last_updated_at
		FROM counters
		WHERE scope_key = $1;
	`
	var m models.Counter
	err := r.Pool.QueryRow(ctx, query, scopeKey).Scan(&m.ScopeKey, &m.Seq, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("counter " + scopeKey + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find counter "+scopeKey, err)
	}

	return &domain.Counter{
		ScopeKey:      m.ScopeKey,
		Seq:           m.Seq,
		LastUpdatedAt: m.LastUpdatedAt,
	}, nil
}

// ResetCounter sets a scope's counter back to zero. Administrative only;
// resetting a scope with live documents will make the next allocation
// collide on the unique document number.
func (r *PgxCounterRepository) ResetCounter(ctx context.Context, scopeKey string) error {
	query := `
		UPDATE counters
		SET seq = 0, last_updated_at = $2
		WHERE scope_key = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, scopeKey, time.Now())
	if err != nil {
		return apperrors.NewAppError(500, "failed to reset counter "+scopeKey, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("counter " + scopeKey + " not found")
	}
	return nil
}
