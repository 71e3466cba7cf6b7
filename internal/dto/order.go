package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// CreateOrderRequest creates a sales order in Draft. Settlement figures are
// derived server-side and never accepted from the caller.
type CreateOrderRequest struct {
	CompanyCode       string          `json:"companyCode" binding:"required"`
	CustomerID        string          `json:"customerID" binding:"required"`
	ItemID            string          `json:"itemID" binding:"required"`
	OrderDate         time.Time       `json:"orderDate" binding:"required"`
	PaymentTerms      string          `json:"paymentTerms" binding:"required"`
	CurrencyCode      string          `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	Quantity          decimal.Decimal `json:"quantity" binding:"required"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	DiscountPct       decimal.Decimal `json:"discountPct"`
	TaxPct            decimal.Decimal `json:"taxPct"`
	WithholdingTaxPct decimal.Decimal `json:"withholdingTaxPct"`
	Charges           decimal.Decimal `json:"charges"`
	Advance           decimal.Decimal `json:"advance"`
}

// UpdateOrderRequest carries a partial edit of an order. Only the fields
// listed here are editable; nil means "leave unchanged". Any accepted edit
// reverts the order's status to Draft.
type UpdateOrderRequest struct {
	CustomerID        *string          `json:"customerID"`
	ItemID            *string          `json:"itemID"`
	OrderDate         *time.Time       `json:"orderDate"`
	PaymentTerms      *string          `json:"paymentTerms"`
	Quantity          *decimal.Decimal `json:"quantity"`
	Price             *decimal.Decimal `json:"price"`
	DiscountPct       *decimal.Decimal `json:"discountPct"`
	TaxPct            *decimal.Decimal `json:"taxPct"`
	WithholdingTaxPct *decimal.Decimal `json:"withholdingTaxPct"`
	Charges           *decimal.Decimal `json:"charges"`
	Advance           *decimal.Decimal `json:"advance"`
}

// HasFinancialChange reports whether the edit touches any input of the
// settlement calculation.
func (r *UpdateOrderRequest) HasFinancialChange() bool {
	return r.Quantity != nil || r.Price != nil || r.DiscountPct != nil ||
		r.TaxPct != nil || r.WithholdingTaxPct != nil || r.Charges != nil ||
		r.Advance != nil
}

// UpdateOrderStatusRequest requests a one-step order status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RecordPaymentRequest records a received payment against an order.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Reference   string          `json:"reference"`
}

// ListOrdersParams holds query parameters for listing orders.
type ListOrdersParams struct {
	CompanyCode string  `form:"companyCode"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// PaymentResponse is the wire form of a recorded payment.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference,omitempty"`
}

// OrderResponse is the wire form of a sales order including derived
// settlement figures.
type OrderResponse struct {
	OrderID             string                  `json:"orderID"`
	OrderNumber         string                  `json:"orderNumber"`
	CompanyCode         string                  `json:"companyCode"`
	CustomerID          string                  `json:"customerID"`
	ItemID              string                  `json:"itemID"`
	OrderDate           time.Time               `json:"orderDate"`
	PaymentTerms        domain.PaymentTerms     `json:"paymentTerms"`
	CurrencyCode        string                  `json:"currencyCode"`
	ExchangeRate        decimal.Decimal         `json:"exchangeRate"`
	Quantity            decimal.Decimal         `json:"quantity"`
	Price               decimal.Decimal         `json:"price"`
	DiscountPct         decimal.Decimal         `json:"discountPct"`
	TaxPct              decimal.Decimal         `json:"taxPct"`
	WithholdingTaxPct   decimal.Decimal         `json:"withholdingTaxPct"`
	Charges             decimal.Decimal         `json:"charges"`
	Advance             decimal.Decimal         `json:"advance"`
	DiscountAmt         decimal.Decimal         `json:"discountAmt"`
	TaxAmount           decimal.Decimal         `json:"taxAmount"`
	WithholdingTaxAmt   decimal.Decimal         `json:"withholdingTaxAmt"`
	NetAmtAfterTax      decimal.Decimal         `json:"netAmtAfterTax"`
	NetAR               decimal.Decimal         `json:"netAR"`
	NetPaymentDue       decimal.Decimal         `json:"netPaymentDue"`
	CarryForwardAdvance decimal.Decimal         `json:"carryForwardAdvance"`
	SettlementStatus    domain.SettlementStatus `json:"settlementStatus"`
	Status              domain.OrderStatus      `json:"status"`
	InvoiceDate         *time.Time              `json:"invoiceDate,omitempty"`
	DueDate             *time.Time              `json:"dueDate,omitempty"`
	Payments            []PaymentResponse       `json:"payments,omitempty"`
	CreatedAt           time.Time               `json:"createdAt"`
	CreatedBy           string                  `json:"createdBy"`
}

// ListOrdersResponse wraps an order page with its continuation token.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToOrderResponse converts a domain order to its wire form.
func ToOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:             o.OrderID,
		OrderNumber:         o.OrderNumber,
		CompanyCode:         o.CompanyCode,
		CustomerID:          o.CustomerID,
		ItemID:              o.ItemID,
		OrderDate:           o.OrderDate,
		PaymentTerms:        o.PaymentTerms,
		CurrencyCode:        o.CurrencyCode,
		ExchangeRate:        o.ExchangeRate,
		Quantity:            o.Quantity,
		Price:               o.Price,
		DiscountPct:         o.DiscountPct,
		TaxPct:              o.TaxPct,
		WithholdingTaxPct:   o.WithholdingTaxPct,
		Charges:             o.Charges,
		Advance:             o.Advance,
		DiscountAmt:         o.DiscountAmt,
		TaxAmount:           o.TaxAmount,
		WithholdingTaxAmt:   o.WithholdingTaxAmt,
		NetAmtAfterTax:      o.NetAmtAfterTax,
		NetAR:               o.NetAR,
		NetPaymentDue:       o.NetPaymentDue,
		CarryForwardAdvance: o.CarryForwardAdvance,
		SettlementStatus:    o.SettlementStatus,
		Status:              o.Status,
		InvoiceDate:         o.InvoiceDate,
		DueDate:             o.DueDate,
		CreatedAt:           o.CreatedAt,
		CreatedBy:           o.CreatedBy,
	}
	for i := range o.Payments {
		p := &o.Payments[i]
		resp.Payments = append(resp.Payments, PaymentResponse{
			PaymentID:   p.PaymentID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Reference:   p.Reference,
		})
	}
	return resp
}
