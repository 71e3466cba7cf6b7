package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// SettlementInput carries the financial fields a settlement derivation reads.
type SettlementInput struct {
	Quantity          decimal.Decimal
	Price             decimal.Decimal
	DiscountPct       decimal.Decimal
	TaxPct            decimal.Decimal
	WithholdingTaxPct decimal.Decimal
	Charges           decimal.Decimal
	Advance           decimal.Decimal
	Payments          []decimal.Decimal
}

// Settlement is the full set of derived amounts for an order.
type Settlement struct {
	DiscountAmt         decimal.Decimal
	TaxableBase         decimal.Decimal
	TaxAmount           decimal.Decimal
	WithholdingTaxAmt   decimal.Decimal
	NetAmtAfterTax      decimal.Decimal
	NetAR               decimal.Decimal
	TotalPaid           decimal.Decimal
	NetPaymentDue       decimal.Decimal
	CarryForwardAdvance decimal.Decimal
	Status              domain.SettlementStatus
}

// ComputeSettlement derives the settlement amounts and status from an order's
// financial fields and accumulated payments. It is a pure function and is
// idempotent: the stored derived fields are never an input.
//
// Intermediate monetary results are rounded after each multiplication step,
// not only at the end, to match accumulated rounding behavior.
func ComputeSettlement(in SettlementInput) Settlement {
	var s Settlement

	initial := in.Quantity.Mul(in.Price).Round(moneyPlaces)
	s.DiscountAmt = in.DiscountPct.Mul(initial).Div(hundred).Round(moneyPlaces)
	s.TaxableBase = initial.Sub(s.DiscountAmt).Add(in.Charges).Round(moneyPlaces)
	s.TaxAmount = in.TaxPct.Mul(s.TaxableBase).Div(hundred).Round(moneyPlaces)
	s.WithholdingTaxAmt = in.WithholdingTaxPct.Mul(s.TaxableBase).Div(hundred).Round(moneyPlaces)
	s.NetAmtAfterTax = s.TaxableBase.Add(s.TaxAmount)
	s.NetAR = s.NetAmtAfterTax.Add(s.WithholdingTaxAmt)

	s.TotalPaid = decimal.Zero
	for _, p := range in.Payments {
		s.TotalPaid = s.TotalPaid.Add(p)
	}
	s.TotalPaid = s.TotalPaid.Round(moneyPlaces)

	combined := in.Advance.Add(s.TotalPaid)
	s.NetPaymentDue = s.NetAR.Sub(s.TotalPaid).Sub(in.Advance)

	// First match wins. PAYMENT_FAILED is terminal and set only by the
	// payment-gateway callback, never here.
	s.CarryForwardAdvance = decimal.Zero
	switch {
	case combined.Equal(s.NetAR):
		s.Status = domain.PaymentFull
	case combined.GreaterThan(s.NetAR):
		s.Status = domain.PaymentFullCarryForward
		s.CarryForwardAdvance = combined.Sub(s.NetAR)
	case combined.GreaterThan(decimal.Zero):
		s.Status = domain.PaymentPartial
	default:
		s.Status = domain.PaymentPending
	}
	return s
}

// ApplyTo writes the derived amounts onto the order.
func (s Settlement) ApplyTo(o *domain.Order) {
	o.DiscountAmt = s.DiscountAmt
	o.TaxAmount = s.TaxAmount
	o.WithholdingTaxAmt = s.WithholdingTaxAmt
	o.NetAmtAfterTax = s.NetAmtAfterTax
	o.NetAR = s.NetAR
	o.NetPaymentDue = s.NetPaymentDue
	o.CarryForwardAdvance = s.CarryForwardAdvance
	o.SettlementStatus = s.Status
}

// SettlementInputFromOrder collects the calculator inputs from an order.
func SettlementInputFromOrder(o *domain.Order) SettlementInput {
	in := SettlementInput{
		Quantity:          o.Quantity,
		Price:             o.Price,
		DiscountPct:       o.DiscountPct,
		TaxPct:            o.TaxPct,
		WithholdingTaxPct: o.WithholdingTaxPct,
		Charges:           o.Charges,
		Advance:           o.Advance,
	}
	for _, p := range o.Payments {
		in.Payments = append(in.Payments, p.Amount)
	}
	return in
}
