package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is one row of the vouchers table.
type Voucher struct {
	VoucherID     string          `json:"voucherID"` // Primary Key (UUID)
	VoucherNumber string          `json:"voucherNumber"`
	SequenceNo    int64           `json:"sequenceNo"`
	PartyID       string          `json:"partyID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	VoucherDate   time.Time       `json:"voucherDate"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	AuditFields
}
