package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus indicates the state of a sales order.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "Draft"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderInvoiced  OrderStatus = "Invoiced"
	OrderClosed    OrderStatus = "Closed"
	OrderCancelled OrderStatus = "Cancelled"
	// OrderAdminMode is the administrative escape state.
	OrderAdminMode OrderStatus = "AdminMode"
)

// SettlementStatus is the derived classification of how fully an order's
// receivable has been paid.
type SettlementStatus string

const (
	PaymentPending          SettlementStatus = "PAYMENT_PENDING"
	PaymentPartial          SettlementStatus = "PAYMENT_PARTIAL"
	PaymentFull             SettlementStatus = "PAYMENT_FULL"
	PaymentFullCarryForward SettlementStatus = "PAYMENT_FULL_CARRY_FORWARD_ADVANCE"
	// PaymentFailed is terminal and only reachable via the payment-gateway
	// callback, never via settlement recomputation.
	PaymentFailed SettlementStatus = "PAYMENT_FAILED"
)

// PaymentTerms drives due-date computation on invoicing.
type PaymentTerms string

const (
	TermsCOD     PaymentTerms = "COD"
	TermsAdvance PaymentTerms = "ADVANCE"
	TermsNet15   PaymentTerms = "NET15"
	TermsNet30   PaymentTerms = "NET30"
	TermsNet45   PaymentTerms = "NET45"
	TermsNet60   PaymentTerms = "NET60"
)

// DaysForPaymentTerm returns the day count a term adds to the invoice date.
// COD and ADVANCE are due immediately; NET<n> terms parse their day count.
func DaysForPaymentTerm(terms PaymentTerms) int {
	s := string(terms)
	if strings.HasPrefix(s, "NET") {
		if n, err := strconv.Atoi(s[3:]); err == nil {
			return n
		}
	}
	return 0
}

// Payment is a single receipt recorded against an order.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	OrderID     string          `json:"orderID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference"`
	AuditFields
}

// Order is a sales order with derived financial fields. The computed amounts
// are always a pure function of the input fields and are recomputed on every
// create and financial-field update, never mutated independently.
type Order struct {
	OrderID     string `json:"orderID"`
	CompanyCode string `json:"companyCode"`
	// OrderNumber and SequenceNo are assigned exactly once at creation.
	OrderNumber  string          `json:"orderNumber"`
	SequenceNo   int64           `json:"sequenceNo"`
	CustomerID   string          `json:"customerID"`
	ItemID       string          `json:"itemID"`
	OrderDate    time.Time       `json:"orderDate"`
	PaymentTerms PaymentTerms    `json:"paymentTerms"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`

	// Financial inputs.
	Quantity          decimal.Decimal `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	DiscountPct       decimal.Decimal `json:"discountPct"`
	TaxPct            decimal.Decimal `json:"taxPct"`
	WithholdingTaxPct decimal.Decimal `json:"withholdingTaxPct"`
	Charges           decimal.Decimal `json:"charges"`
	Advance           decimal.Decimal `json:"advance"`

	// Derived amounts (see accounting.ComputeSettlement).
	DiscountAmt         decimal.Decimal  `json:"discountAmt"`
	TaxAmount           decimal.Decimal  `json:"taxAmount"`
	WithholdingTaxAmt   decimal.Decimal  `json:"withholdingTaxAmt"`
	NetAmtAfterTax      decimal.Decimal  `json:"netAmtAfterTax"`
	NetAR               decimal.Decimal  `json:"netAR"`
	NetPaymentDue       decimal.Decimal  `json:"netPaymentDue"`
	CarryForwardAdvance decimal.Decimal  `json:"carryForwardAdvance"`
	SettlementStatus    SettlementStatus `json:"settlementStatus"`

	Status      OrderStatus `json:"status"`
	InvoiceDate *time.Time  `json:"invoiceDate"`
	DueDate     *time.Time  `json:"dueDate"`
	Payments    []Payment   `json:"payments,omitempty"`
	AuditFields
}

// EditableStatuses are the statuses in which financial fields may be changed.
// A successful edit always reverts the order to Draft.
var orderEditableStatuses = map[OrderStatus]bool{
	OrderDraft:     true,
	OrderConfirmed: true,
}

// IsEditable reports whether financial fields may be changed in the current status.
func (o *Order) IsEditable() bool {
	return orderEditableStatuses[o.Status]
}

var orderTransitions = StateMachine[OrderStatus]{
	Transitions: map[OrderStatus][]OrderStatus{
		OrderDraft:     {OrderConfirmed, OrderCancelled},
		OrderConfirmed: {OrderInvoiced, OrderCancelled, OrderDraft},
		OrderInvoiced:  {OrderClosed},
	},
	Escape: []OrderStatus{OrderAdminMode},
}

// OrderTransitions returns the sales-order state machine.
func OrderTransitions() StateMachine[OrderStatus] {
	return orderTransitions
}
