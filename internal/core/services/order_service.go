package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
	"github.com/finbooks/erp_ledger_app/internal/utils/accounting"
	"github.com/finbooks/erp_ledger_app/internal/utils/numbering"
)

var (
	ErrOrderNotEditable    = errors.New("order cannot be edited in its current status")
	ErrInvalidPaymentTerms = errors.New("unknown payment terms")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrOrderNotInvoiced    = errors.New("order must be invoiced to accept payments")
	ErrPaymentFailedState  = errors.New("order payment is in failed state; the gateway must retry first")
	ErrPaymentNotFailed    = errors.New("order payment is not in failed state")
)

const orderListCacheKey = "list:orders"

var validPaymentTerms = map[domain.PaymentTerms]bool{
	domain.TermsCOD:     true,
	domain.TermsAdvance: true,
	domain.TermsNet15:   true,
	domain.TermsNet30:   true,
	domain.TermsNet45:   true,
	domain.TermsNet60:   true,
}

// orderService provides sales order CRUD, settlement derivation, status
// transitions and payment recording.
type orderService struct {
	orderRepo   portsrepo.OrderRepositoryFacade
	auditRepo   portsrepo.AuditLogRepository
	sequenceSvc portssvc.SequenceAllocatorSvc
	cache       portssvc.CacheInvalidator
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, sequenceSvc portssvc.SequenceAllocatorSvc, auditRepo portsrepo.AuditLogRepository, cache portssvc.CacheInvalidator) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		sequenceSvc: sequenceSvc,
		cache:       cache,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder numbers, settles and persists a new order in Draft. Derived
// amounts are computed here; client-supplied values for them are ignored.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actor domain.Actor) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	terms := domain.PaymentTerms(req.PaymentTerms)
	if !validPaymentTerms[terms] {
		return nil, fmt.Errorf("%w: %q: %w", apperrors.ErrValidation, req.PaymentTerms, ErrInvalidPaymentTerms)
	}
	if !req.Quantity.IsPositive() || !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: quantity and price: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	rng, err := s.sequenceSvc.Allocate(ctx, numbering.ScopeSalesOrder, 1)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rate := req.ExchangeRate
	if rate.IsZero() {
		rate = decimalOne
	}

	order := domain.Order{
		OrderID:           uuid.NewString(),
		CompanyCode:       req.CompanyCode,
		OrderNumber:       numbering.SalesOrderNumber(rng.First),
		SequenceNo:        rng.First,
		CustomerID:        req.CustomerID,
		ItemID:            req.ItemID,
		OrderDate:         req.OrderDate,
		PaymentTerms:      terms,
		CurrencyCode:      req.CurrencyCode,
		ExchangeRate:      rate,
		Quantity:          req.Quantity,
		Price:             req.Price,
		DiscountPct:       req.DiscountPct,
		TaxPct:            req.TaxPct,
		WithholdingTaxPct: req.WithholdingTaxPct,
		Charges:           req.Charges,
		Advance:           req.Advance,
		Status:            domain.OrderDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	accounting.ComputeSettlement(accounting.SettlementInputFromOrder(&order)).ApplyTo(&order)

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order, releasing sequence number",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()),
		)
		if relErr := s.sequenceSvc.Release(ctx, numbering.ScopeSalesOrder, 1); relErr != nil {
			logger.Warn("Sequence release after failed save did not succeed",
				slog.String("scope_key", numbering.ScopeSalesOrder),
				slog.String("error", relErr.Error()),
			)
		}
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	logger.Info("Order created",
		slog.String("order_id", order.OrderID),
		slog.String("order_number", order.OrderNumber),
	)
	writeAudit(ctx, s.auditRepo, actor, "order", "create", order.OrderID, map[string]any{
		"orderNumber": order.OrderNumber,
		"netAR":       order.NetAR.String(),
	})
	s.invalidateLists(ctx)

	return &order, nil
}

// GetOrderByID retrieves an order with its payments.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return order, nil
}

// ListOrders retrieves a paginated list of orders.
func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	limit := normalizeLimit(params.Limit)

	orders, nextToken, err := s.orderRepo.ListOrders(ctx, params.CompanyCode, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	resp := &dto.ListOrdersResponse{NextToken: nextToken}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.ToOrderResponse(&orders[i]))
	}
	return resp, nil
}

// UpdateOrder applies a partial edit. Only Draft and Confirmed orders are
// editable; any accepted edit reverts the order to Draft so it walks the
// status path again, and financial edits recompute the full settlement.
func (s *orderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, actor domain.Actor) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if !order.IsEditable() {
		return nil, fmt.Errorf("%w: status %s: %w", apperrors.ErrConflict, order.Status, ErrOrderNotEditable)
	}
	if order.SettlementStatus == domain.PaymentFailed {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPaymentFailedState)
	}

	changes := map[string]any{}
	if req.CustomerID != nil {
		order.CustomerID = *req.CustomerID
		changes["customerID"] = *req.CustomerID
	}
	if req.ItemID != nil {
		order.ItemID = *req.ItemID
		changes["itemID"] = *req.ItemID
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
		changes["orderDate"] = req.OrderDate.Format(time.RFC3339)
	}
	if req.PaymentTerms != nil {
		terms := domain.PaymentTerms(*req.PaymentTerms)
		if !validPaymentTerms[terms] {
			return nil, fmt.Errorf("%w: %q: %w", apperrors.ErrValidation, *req.PaymentTerms, ErrInvalidPaymentTerms)
		}
		order.PaymentTerms = terms
		changes["paymentTerms"] = *req.PaymentTerms
	}
	applyDecimal := func(field string, dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
			changes[field] = src.String()
		}
	}
	applyDecimal("quantity", &order.Quantity, req.Quantity)
	applyDecimal("price", &order.Price, req.Price)
	applyDecimal("discountPct", &order.DiscountPct, req.DiscountPct)
	applyDecimal("taxPct", &order.TaxPct, req.TaxPct)
	applyDecimal("withholdingTaxPct", &order.WithholdingTaxPct, req.WithholdingTaxPct)
	applyDecimal("charges", &order.Charges, req.Charges)
	applyDecimal("advance", &order.Advance, req.Advance)

	if len(changes) == 0 {
		return order, nil
	}
	if !order.Quantity.IsPositive() || !order.Price.IsPositive() {
		return nil, fmt.Errorf("%w: quantity and price: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	if req.HasFinancialChange() {
		accounting.ComputeSettlement(accounting.SettlementInputFromOrder(order)).ApplyTo(order)
	}

	// An edited order starts its lifecycle over.
	previousStatus := order.Status
	order.Status = domain.OrderDraft
	order.InvoiceDate = nil
	order.DueDate = nil

	now := time.Now()
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actor.UserID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Order updated",
		slog.String("order_id", orderID),
		slog.String("previous_status", string(previousStatus)),
		slog.Int("changed_fields", len(changes)),
	)
	writeAudit(ctx, s.auditRepo, actor, "order", "update", orderID, changes)
	s.invalidateLists(ctx)

	return order, nil
}

// UpdateOrderStatus applies a one-step status transition. Moving to Invoiced
// stamps the invoice date and computes the due date from the payment terms.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, target domain.OrderStatus, actor domain.Actor) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if err := guardTransition(domain.OrderTransitions(), "order", order.Status, target, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	previousStatus := order.Status
	order.Status = target
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actor.UserID

	// Stamped once: an escape-state round trip back to Invoiced keeps the
	// original invoice and due dates.
	if target == domain.OrderInvoiced && order.InvoiceDate == nil {
		invoiceDate := now
		dueDate := invoiceDate.AddDate(0, 0, domain.DaysForPaymentTerm(order.PaymentTerms))
		order.InvoiceDate = &invoiceDate
		order.DueDate = &dueDate
	}

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order %s status: %w", orderID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(previousStatus)),
		slog.String("to", string(target)),
	)
	writeAudit(ctx, s.auditRepo, actor, "order", "status-change", orderID, map[string]any{
		"from": string(previousStatus),
		"to":   string(target),
	})
	s.invalidateLists(ctx)

	return order, nil
}

// RecordPayment records a received payment and recomputes the settlement
// from scratch, including the new payment.
func (s *orderService) RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Order, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.Status != domain.OrderInvoiced {
		return nil, fmt.Errorf("%w: status %s: %w", apperrors.ErrConflict, order.Status, ErrOrderNotInvoiced)
	}
	if order.SettlementStatus == domain.PaymentFailed {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPaymentFailedState)
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		OrderID:     orderID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Reference:   req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	order.Payments = append(order.Payments, payment)
	accounting.ComputeSettlement(accounting.SettlementInputFromOrder(order)).ApplyTo(order)
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actor.UserID

	if err := s.orderRepo.AddPayment(ctx, payment, *order); err != nil {
		return nil, fmt.Errorf("failed to record payment on order %s: %w", orderID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Payment recorded",
		slog.String("order_id", orderID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("settlement_status", string(order.SettlementStatus)),
	)
	writeAudit(ctx, s.auditRepo, actor, "order", "update", orderID, map[string]any{
		"paymentID":        payment.PaymentID,
		"amount":           payment.Amount.String(),
		"settlementStatus": string(order.SettlementStatus),
	})
	s.invalidateLists(ctx)

	return order, nil
}

// MarkPaymentFailed flags the order after a payment-gateway failure
// callback. PAYMENT_FAILED is terminal: edits and further payments are
// rejected until ClearPaymentFailure lifts it.
func (s *orderService) MarkPaymentFailed(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	now := time.Now()
	order.SettlementStatus = domain.PaymentFailed
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actor.UserID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to mark payment failed on order %s: %w", orderID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Payment marked failed",
		slog.String("order_id", orderID),
	)
	writeAudit(ctx, s.auditRepo, actor, "order", "status-change", orderID, map[string]any{
		"settlementStatus": string(domain.PaymentFailed),
	})
	s.invalidateLists(ctx)

	return order, nil
}

// ClearPaymentFailure lifts the terminal PAYMENT_FAILED flag when the
// gateway signals a retry. The settlement is recomputed from the order's
// inputs and recorded payments, restoring the derived status.
func (s *orderService) ClearPaymentFailure(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.SettlementStatus != domain.PaymentFailed {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPaymentNotFailed)
	}

	now := time.Now()
	accounting.ComputeSettlement(accounting.SettlementInputFromOrder(order)).ApplyTo(order)
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actor.UserID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to clear payment failure on order %s: %w", orderID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Payment failure cleared",
		slog.String("order_id", orderID),
		slog.String("settlement_status", string(order.SettlementStatus)),
	)
	writeAudit(ctx, s.auditRepo, actor, "order", "status-change", orderID, map[string]any{
		"settlementStatus": string(order.SettlementStatus),
	})
	s.invalidateLists(ctx)

	return order, nil
}

func (s *orderService) invalidateLists(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, orderListCacheKey)
	}
}
