package repositories

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// CounterRepository provides the atomic fetch-add primitive behind the
// sequence allocator. Implementations must perform IncrementAndGet as a
// single atomic read-modify-write against shared storage, never an
// in-process read-then-write, since multiple service instances share the
// counters.
type CounterRepository interface {
	// IncrementAndGet atomically adds count to the scope's counter, creating
	// it at zero on first use, and returns the new value.
	IncrementAndGet(ctx context.Context, scopeKey string, count int64) (int64, error)

	// Decrement subtracts count from the scope's counter, clamped at zero.
	// Used only for best-effort compensation after a failed document create.
	Decrement(ctx context.Context, scopeKey string, count int64) error

	// FindCounter retrieves the current counter state for a scope.
	FindCounter(ctx context.Context, scopeKey string) (*domain.Counter, error)

	// ResetCounter sets a scope's counter back to zero. Administrative only.
	ResetCounter(ctx context.Context, scopeKey string) error
}
