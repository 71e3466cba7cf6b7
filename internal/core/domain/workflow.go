package domain

import "time"

// ApprovalStepStatus is the decision state of a single workflow step.
type ApprovalStepStatus string

const (
	StepPending          ApprovalStepStatus = "PENDING"
	StepApproved         ApprovalStepStatus = "APPROVED"
	StepRejected         ApprovalStepStatus = "REJECTED"
	StepChangesRequested ApprovalStepStatus = "CHANGES_REQUESTED"
)

// ApprovalStep is one entry of a journal's approval chain. Once acted upon,
// only Status/ActedBy/ActedAt/Comment are written, exactly once.
type ApprovalStep struct {
	Step       int                `json:"step"` // 1-based index
	AssignedTo string             `json:"assignedTo"`
	Status     ApprovalStepStatus `json:"status"`
	ActedBy    *string            `json:"actedBy"`
	ActedAt    *time.Time         `json:"actedAt"`
	Comment    string             `json:"comment"`
}

// HistoryAction classifies an entry of the audit trail attached to a journal.
type HistoryAction string

const (
	HistorySubmit         HistoryAction = "SUBMIT"
	HistoryApprove        HistoryAction = "APPROVE"
	HistoryReject         HistoryAction = "REJECT"
	HistoryRequestChanges HistoryAction = "REQUEST_CHANGES"
	HistoryDelegate       HistoryAction = "DELEGATE"
	HistoryStatusChange   HistoryAction = "STATUS_CHANGE"
)

// HistoryEntry is an append-only audit trail record. Entries are never
// updated or deleted.
type HistoryEntry struct {
	EntryID     string        `json:"entryID"`
	JournalID   string        `json:"journalID"`
	At          time.Time     `json:"at"`
	Actor       string        `json:"actor"`
	Action      HistoryAction `json:"action"`
	Step        *int          `json:"step"`
	DelegatedTo *string       `json:"delegatedTo"`
	Comment     string        `json:"comment"`
}
