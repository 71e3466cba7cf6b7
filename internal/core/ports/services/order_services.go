package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// OrderReaderSvc defines read operations for sales orders.
type OrderReaderSvc interface {
	// GetOrderByID retrieves an order with its payments.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a paginated list of orders.
	ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)
}

// OrderWriterSvc defines write operations for sales orders.
type OrderWriterSvc interface {
	// CreateOrder numbers, settles and persists a new order in Draft.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actor domain.Actor) (*domain.Order, error)

	// UpdateOrder applies a partial edit. Financial edits recompute the
	// settlement and any accepted edit reverts the order to Draft.
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, actor domain.Actor) (*domain.Order, error)

	// UpdateOrderStatus applies a one-step status transition. Moving to
	// Invoiced stamps the invoice and due dates from the payment terms.
	UpdateOrderStatus(ctx context.Context, orderID string, target domain.OrderStatus, actor domain.Actor) (*domain.Order, error)
}

// OrderPaymentSvc defines payment operations against sales orders.
type OrderPaymentSvc interface {
	// RecordPayment records a received payment and recomputes the settlement.
	RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Order, error)

	// MarkPaymentFailed flags the order after a gateway failure callback.
	// The flag is terminal: edits and payments are rejected while it is set.
	MarkPaymentFailed(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error)

	// ClearPaymentFailure lifts the PAYMENT_FAILED flag on a gateway retry
	// and recomputes the settlement from the order's inputs.
	ClearPaymentFailure(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces.
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	OrderPaymentSvc
}
