// Package numbering turns allocated sequence values into human-readable
// document numbers. Formatting is pure and deterministic; the counter state
// lives entirely with the sequence allocator.
package numbering

import "fmt"

// Padding widths observed across the document families.
const (
	WidthHierarchy = 3 // site/warehouse/zone/location codes
	WidthDocument  = 6 // business documents (orders, journals, vouchers)
)

// Counter scope keys. Each key names an independent counter; separate scopes
// never share locks or values.
const (
	ScopeSalesOrder     = "salesOrderCode"
	ScopeGeneralJournal = "GJ"
	ScopeVoucher        = "PV"
	ScopeLocation       = "locationCode"
)

// LocalJournalScope returns the per-company counter scope for local journals.
func LocalJournalScope(companyCode string) string {
	return "LJ_" + companyCode
}

// Format pads value to width digits and prepends the literal prefix.
func Format(prefix string, value int64, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, value)
}

// SalesOrderNumber formats a sales order code, e.g. SO_000042.
func SalesOrderNumber(value int64) string {
	return Format("SO_", value, WidthDocument)
}

// GeneralJournalNumber formats a global journal code, e.g. GJ-000007.
func GeneralJournalNumber(value int64) string {
	return Format("GJ-", value, WidthDocument)
}

// LocalJournalNumber formats a per-company journal code, e.g. LJMM01-000019.
func LocalJournalNumber(companyCode string, value int64) string {
	return Format("LJ"+companyCode+"-", value, WidthDocument)
}

// VoucherNumber formats a payment voucher code, e.g. PV-000003.
func VoucherNumber(value int64) string {
	return Format("PV-", value, WidthDocument)
}

// HierarchyCode formats a warehouse-hierarchy code, e.g. LOC012.
func HierarchyCode(prefix string, value int64) string {
	return Format(prefix, value, WidthHierarchy)
}
