package mapping

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:             d.OrderID,
		CompanyCode:         d.CompanyCode,
		OrderNumber:         d.OrderNumber,
		SequenceNo:          d.SequenceNo,
		CustomerID:          d.CustomerID,
		ItemID:              d.ItemID,
		OrderDate:           d.OrderDate,
		PaymentTerms:        string(d.PaymentTerms),
		CurrencyCode:        d.CurrencyCode,
		ExchangeRate:        d.ExchangeRate,
		Quantity:            d.Quantity,
		Price:               d.Price,
		DiscountPct:         d.DiscountPct,
		TaxPct:              d.TaxPct,
		WithholdingTaxPct:   d.WithholdingTaxPct,
		Charges:             d.Charges,
		Advance:             d.Advance,
		DiscountAmt:         d.DiscountAmt,
		TaxAmount:           d.TaxAmount,
		WithholdingTaxAmt:   d.WithholdingTaxAmt,
		NetAmtAfterTax:      d.NetAmtAfterTax,
		NetAR:               d.NetAR,
		NetPaymentDue:       d.NetPaymentDue,
		CarryForwardAdvance: d.CarryForwardAdvance,
		SettlementStatus:    string(d.SettlementStatus),
		Status:              string(d.Status),
		InvoiceDate:         d.InvoiceDate,
		DueDate:             d.DueDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:             m.OrderID,
		CompanyCode:         m.CompanyCode,
		OrderNumber:         m.OrderNumber,
		SequenceNo:          m.SequenceNo,
		CustomerID:          m.CustomerID,
		ItemID:              m.ItemID,
		OrderDate:           m.OrderDate,
		PaymentTerms:        domain.PaymentTerms(m.PaymentTerms),
		CurrencyCode:        m.CurrencyCode,
		ExchangeRate:        m.ExchangeRate,
		Quantity:            m.Quantity,
		Price:               m.Price,
		DiscountPct:         m.DiscountPct,
		TaxPct:              m.TaxPct,
		WithholdingTaxPct:   m.WithholdingTaxPct,
		Charges:             m.Charges,
		Advance:             m.Advance,
		DiscountAmt:         m.DiscountAmt,
		TaxAmount:           m.TaxAmount,
		WithholdingTaxAmt:   m.WithholdingTaxAmt,
		NetAmtAfterTax:      m.NetAmtAfterTax,
		NetAR:               m.NetAR,
		NetPaymentDue:       m.NetPaymentDue,
		CarryForwardAdvance: m.CarryForwardAdvance,
		SettlementStatus:    domain.SettlementStatus(m.SettlementStatus),
		Status:              domain.OrderStatus(m.Status),
		InvoiceDate:         m.InvoiceDate,
		DueDate:             m.DueDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		OrderID:     d.OrderID,
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		OrderID:     m.OrderID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
