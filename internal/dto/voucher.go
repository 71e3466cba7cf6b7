package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// CreateVoucherRequest creates a payment voucher in Draft.
type CreateVoucherRequest struct {
	PartyID      string          `json:"partyID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
}

// UpdateVoucherStatusRequest requests a one-step voucher status transition.
type UpdateVoucherStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListVouchersParams holds query parameters for listing vouchers.
type ListVouchersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// VoucherResponse is the wire form of a payment voucher.
type VoucherResponse struct {
	VoucherID     string               `json:"voucherID"`
	VoucherNumber string               `json:"voucherNumber"`
	PartyID       string               `json:"partyID"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyCode  string               `json:"currencyCode"`
	Date          time.Time            `json:"date"`
	Description   string               `json:"description,omitempty"`
	Status        domain.VoucherStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ListVouchersResponse wraps a voucher page with its continuation token.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToVoucherResponse converts a domain voucher to its wire form.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:     v.VoucherID,
		VoucherNumber: v.VoucherNumber,
		PartyID:       v.PartyID,
		Amount:        v.Amount,
		CurrencyCode:  v.CurrencyCode,
		Date:          v.VoucherDate,
		Description:   v.Description,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
	}
}
