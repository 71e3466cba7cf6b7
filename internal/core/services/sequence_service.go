package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// sequenceService hands out document numbers from per-scope atomic counters.
type sequenceService struct {
	counterRepo portsrepo.CounterRepository
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(counterRepo portsrepo.CounterRepository) portssvc.SequenceSvcFacade {
	return &sequenceService{counterRepo: counterRepo}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// Allocate reserves count contiguous numbers under scopeKey. The counter row
// is bumped atomically, so concurrent callers get disjoint ranges. The
// increment is never rolled back with the caller's transaction; an abort
// leaves a gap in the sequence, which is acceptable, a duplicate number is not.
func (s *sequenceService) Allocate(ctx context.Context, scopeKey string, count int64) (domain.SequenceRange, error) {
	if count < 1 {
		return domain.SequenceRange{}, fmt.Errorf("%w: allocation count must be positive, got %d", apperrors.ErrValidation, count)
	}

	newValue, err := s.counterRepo.IncrementAndGet(ctx, scopeKey, count)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to allocate sequence numbers",
			slog.String("scope_key", scopeKey),
			slog.Int64("count", count),
			slog.String("error", err.Error()),
		)
		return domain.SequenceRange{}, fmt.Errorf("%w: scope %s: %v", apperrors.ErrSequenceAllocation, scopeKey, err)
	}

	return domain.SequenceRange{First: newValue - count + 1, Last: newValue}, nil
}

// Release hands back count numbers after a failed persist. Only safe when the
// caller knows no later allocation happened under the same scope; the counter
// repository clamps at zero so a stray release can never go negative.
func (s *sequenceService) Release(ctx context.Context, scopeKey string, count int64) error {
	if count < 1 {
		return fmt.Errorf("%w: release count must be positive, got %d", apperrors.ErrValidation, count)
	}

	if err := s.counterRepo.Decrement(ctx, scopeKey, count); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to release sequence numbers, gap will remain",
			slog.String("scope_key", scopeKey),
			slog.Int64("count", count),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to release %d numbers for scope %s: %w", count, scopeKey, err)
	}
	return nil
}

// ReserveBlock reserves a block of numbers for an external consumer.
func (s *sequenceService) ReserveBlock(ctx context.Context, req dto.ReserveSequenceRequest, actor domain.Actor) (domain.SequenceRange, error) {
	rng, err := s.Allocate(ctx, req.ScopeKey, req.Count)
	if err != nil {
		return domain.SequenceRange{}, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Reserved sequence block",
		slog.String("scope_key", req.ScopeKey),
		slog.Int64("first", rng.First),
		slog.Int64("last", rng.Last),
		slog.String("reserved_by", actor.UserID),
	)
	return rng, nil
}

// GetCounter returns the current counter state for a scope key.
func (s *sequenceService) GetCounter(ctx context.Context, scopeKey string) (*domain.Counter, error) {
	counter, err := s.counterRepo.FindCounter(ctx, scopeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to find counter for scope %s: %w", scopeKey, err)
	}
	return counter, nil
}
