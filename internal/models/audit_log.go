package models

import "time"

// AuditLog is one row of the audit_logs table. Changes is stored as JSONB.
type AuditLog struct {
	AuditID  string    `json:"auditID"` // Primary Key (UUID)
	UserID   string    `json:"userID"`
	Module   string    `json:"module"`
	Action   string    `json:"action"`
	RecordID string    `json:"recordID"`
	Changes  []byte    `json:"changes"`
	At       time.Time `json:"at"`
}
