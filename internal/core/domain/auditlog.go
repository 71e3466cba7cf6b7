package domain

import "time"

// AuditLog is one record of the cross-cutting audit trail written after
// every successful create/update/delete/status-change. Writes are
// fire-and-forget: a failed audit write never rolls back the business
// transaction.
type AuditLog struct {
	AuditID  string         `json:"auditID"`
	User     string         `json:"user"`
	Module   string         `json:"module"` // "journal", "order", "voucher", "sequence"
	Action   string         `json:"action"` // "create", "update", "delete", "status-change"
	RecordID string         `json:"recordID"`
	Changes  map[string]any `json:"changes,omitempty"`
	At       time.Time      `json:"at"`
}
