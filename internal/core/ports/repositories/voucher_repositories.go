package repositories

import (
	"context"
	"time"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// VoucherRepositoryFacade defines persistence for payment vouchers.
type VoucherRepositoryFacade interface {
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.Voucher, *string, error)
	UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, updatedBy string, updatedAt time.Time) error
}
