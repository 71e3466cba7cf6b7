package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// SequenceAllocatorSvc defines sequence allocation operations used by the
// document services.
type SequenceAllocatorSvc interface {
	// Allocate reserves count contiguous numbers under scopeKey and returns
	// the inclusive range. Numbers are never handed out twice.
	Allocate(ctx context.Context, scopeKey string, count int64) (domain.SequenceRange, error)

	// Release hands back count numbers after a failed document persist. Best
	// effort: a lost release leaves a gap, never a duplicate.
	Release(ctx context.Context, scopeKey string, count int64) error
}

// SequenceAdminSvc defines administrative sequence operations exposed over
// the API.
type SequenceAdminSvc interface {
	// ReserveBlock reserves a block of numbers for an external consumer.
	ReserveBlock(ctx context.Context, req dto.ReserveSequenceRequest, actor domain.Actor) (domain.SequenceRange, error)

	// GetCounter returns the current counter state for a scope key.
	GetCounter(ctx context.Context, scopeKey string) (*domain.Counter, error)
}

// SequenceSvcFacade combines all sequence-related service interfaces.
type SequenceSvcFacade interface {
	SequenceAllocatorSvc
	SequenceAdminSvc
}
