package mapping

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:     d.VoucherID,
		VoucherNumber: d.VoucherNumber,
		SequenceNo:    d.SequenceNo,
		PartyID:       d.PartyID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		VoucherDate:   d.VoucherDate,
		Description:   d.Description,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:     m.VoucherID,
		VoucherNumber: m.VoucherNumber,
		SequenceNo:    m.SequenceNo,
		PartyID:       m.PartyID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		VoucherDate:   m.VoucherDate,
		Description:   m.Description,
		Status:        domain.VoucherStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
