package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one row of the sales_orders table.
type Order struct {
	OrderID      string    `json:"orderID"` // Primary Key (UUID)
	CompanyCode  string    `json:"companyCode"`
	OrderNumber  string    `json:"orderNumber"` // Unique
	SequenceNo   int64     `json:"sequenceNo"`
	CustomerID   string    `json:"customerID"`
	ItemID       string    `json:"itemID"`
	OrderDate    time.Time `json:"orderDate"`
	PaymentTerms string    `json:"paymentTerms"`
	CurrencyCode string    `json:"currencyCode"`

	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	Quantity          decimal.Decimal `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	DiscountPct       decimal.Decimal `json:"discountPct"`
	TaxPct            decimal.Decimal `json:"taxPct"`
	WithholdingTaxPct decimal.Decimal `json:"withholdingTaxPct"`
	Charges           decimal.Decimal `json:"charges"`
	Advance           decimal.Decimal `json:"advance"`

	DiscountAmt         decimal.Decimal `json:"discountAmt"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	WithholdingTaxAmt   decimal.Decimal `json:"withholdingTaxAmt"`
	NetAmtAfterTax      decimal.Decimal `json:"netAmtAfterTax"`
	NetAR               decimal.Decimal `json:"netAR"`
	NetPaymentDue       decimal.Decimal `json:"netPaymentDue"`
	CarryForwardAdvance decimal.Decimal `json:"carryForwardAdvance"`
	SettlementStatus    string          `json:"settlementStatus"`

	Status      string     `json:"status"`
	InvoiceDate *time.Time `json:"invoiceDate"`
	DueDate     *time.Time `json:"dueDate"`
	AuditFields
}

// Payment is one row of the order_payments table.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	OrderID     string          `json:"orderID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference"`
	AuditFields
}
