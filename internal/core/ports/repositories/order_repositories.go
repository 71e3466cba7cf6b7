package repositories

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// OrderReader defines read operations for sales order data.
type OrderReader interface {
	// FindOrderByID retrieves an order with its payments.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a paginated list of orders using token-based
	// pagination.
	ListOrders(ctx context.Context, companyCode string, limit int, nextToken *string) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for sales order data.
type OrderWriter interface {
	// SaveOrder persists a new order.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrder writes an order's financial inputs, derived fields,
	// status and date stamps.
	UpdateOrder(ctx context.Context, order domain.Order) error

	// AddPayment inserts the payment and writes the recomputed derived
	// fields on the order within one transaction.
	AddPayment(ctx context.Context, payment domain.Payment, order domain.Order) error
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
