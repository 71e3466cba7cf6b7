package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus indicates the state of a payment voucher.
type VoucherStatus string

const (
	VoucherDraft     VoucherStatus = "Draft"
	VoucherApproved  VoucherStatus = "Approved"
	VoucherPaid      VoucherStatus = "Paid"
	VoucherCancelled VoucherStatus = "Cancelled"
	// VoucherAnyMode is the administrative escape state.
	VoucherAnyMode VoucherStatus = "AnyMode"
)

// Voucher is a payment voucher against a party, numbered like other business
// documents.
type Voucher struct {
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"`
	SequenceNo    int64           `json:"sequenceNo"`
	PartyID       string          `json:"partyID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	VoucherDate   time.Time       `json:"voucherDate"`
	Description   string          `json:"description"`
	Status        VoucherStatus   `json:"status"`
	AuditFields
}

var voucherTransitions = StateMachine[VoucherStatus]{
	Transitions: map[VoucherStatus][]VoucherStatus{
		VoucherDraft:    {VoucherApproved, VoucherCancelled},
		VoucherApproved: {VoucherPaid, VoucherCancelled},
	},
	Escape: []VoucherStatus{VoucherAnyMode},
}

// VoucherTransitions returns the voucher state machine.
func VoucherTransitions() StateMachine[VoucherStatus] {
	return voucherTransitions
}
