package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// orderHandler handles HTTP requests related to sales orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

// newOrderHandler creates a new orderHandler.
func newOrderHandler(orderService portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{
		orderService: orderService,
	}
}

// createOrder godoc
// @Summary Create a sales order
// @Description Numbers the order, derives its settlement figures and persists it in Draft
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateOrderRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	order, err := h.orderService.CreateOrder(c.Request.Context(), createReq, actor)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}

	logger.Info("Order created successfully", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get a sales order with its payments
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List sales orders
// @Tags orders
// @Produce  json
// @Param   companyCode query string false "Company code filter"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListOrdersResponse
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateOrder godoc
// @Summary Edit a sales order
// @Description Applies a partial edit; financial edits recompute the settlement and any edit reverts the order to Draft
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   order body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} map[string]string "Order not editable in its current status"
// @Router /orders/{orderID} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	orderID := c.Param("orderID")

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrderStatus godoc
// @Summary Apply a one-step order status transition
// @Description Moving to Invoiced stamps the invoice date and derives the due date from the payment terms
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   status body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} map[string]string "Elevation required"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /orders/{orderID}/status [put]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	orderID := c.Param("orderID")

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status), actor)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// recordPayment godoc
// @Summary Record a payment against an invoiced order
// @Description Inserts the payment and recomputes the settlement figures
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} map[string]string "Order not invoiced"
// @Router /orders/{orderID}/payments [post]
func (h *orderHandler) recordPayment(c *gin.Context) {
	orderID := c.Param("orderID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	order, err := h.orderService.RecordPayment(c.Request.Context(), orderID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// markPaymentFailed godoc
// @Summary Mark an order's payment as failed
// @Description Gateway failure callback; sets the terminal PAYMENT_FAILED settlement status
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/{orderID}/payments/failed [post]
func (h *orderHandler) markPaymentFailed(c *gin.Context) {
	orderID := c.Param("orderID")

	actor := requestActor(c)

	order, err := h.orderService.MarkPaymentFailed(c.Request.Context(), orderID, actor)
	if err != nil {
		respondError(c, err, "Failed to mark payment failed")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// clearPaymentFailure godoc
// @Summary Clear an order's failed payment flag
// @Description Gateway retry callback; recomputes the settlement from the recorded payments
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} map[string]string "Order payment is not in failed state"
// @Router /orders/{orderID}/payments/retry [post]
func (h *orderHandler) clearPaymentFailure(c *gin.Context) {
	orderID := c.Param("orderID")

	actor := requestActor(c)

	order, err := h.orderService.ClearPaymentFailure(c.Request.Context(), orderID, actor)
	if err != nil {
		respondError(c, err, "Failed to clear payment failure")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
