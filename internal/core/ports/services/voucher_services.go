package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// VoucherReaderSvc defines read operations for payment vouchers.
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher by its ID.
	GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a paginated list of vouchers.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines write operations for payment vouchers.
type VoucherWriterSvc interface {
	// CreateVoucher numbers and persists a new voucher in Draft.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error)

	// UpdateVoucherStatus applies a one-step status transition.
	UpdateVoucherStatus(ctx context.Context, voucherID string, target domain.VoucherStatus, actor domain.Actor) (*domain.Voucher, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces.
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}
