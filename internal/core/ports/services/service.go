package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Sequence SequenceSvcFacade
	Journal  JournalSvcFacade
	Order    OrderSvcFacade
	Voucher  VoucherSvcFacade
}

// CacheInvalidator drops cached list responses after a write. Implementations
// must be safe for concurrent use; invalidation failures are logged, not
// returned to callers.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}
