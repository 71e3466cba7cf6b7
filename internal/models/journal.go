package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// Journal is one row of the journals table.
type Journal struct {
	JournalID             string          `json:"journalID"` // Primary Key (UUID)
	CompanyCode           string          `json:"companyCode"`
	JournalNumber         string          `json:"journalNumber"` // Unique per scope
	SequenceNo            int64           `json:"sequenceNo"`
	JournalDate           time.Time       `json:"journalDate"`
	Reference             string          `json:"reference"`
	Description           string          `json:"description"`
	CurrencyCode          string          `json:"currencyCode"`
	Status                JournalStatus   `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	TemplateID            *string         `json:"templateID"`
	AllowHeader           bool            `json:"allowHeader"`
	AllowSingleHeaderOnly bool            `json:"allowSingleHeaderOnly"`
	OriginalJournalID     *string         `json:"originalJournalID"`
	ReversingJournalID    *string         `json:"reversingJournalID"`
	CurrentStep           int             `json:"currentStep"`
	SubmittedAt           *time.Time      `json:"submittedAt"`
	AuditFields
}

// LedgerLine is one row of the ledger_lines table.
type LedgerLine struct {
	LineID        string          `json:"lineID"` // Primary Key (UUID)
	JournalID     string          `json:"journalID"`
	LineNum       int             `json:"lineNum"`
	Sequence      int             `json:"sequence"`
	IsHeader      bool            `json:"isHeader"`
	ParentLineNum *int            `json:"parentLineNum"`
	AccountID     *string         `json:"accountID"`
	SubledgerID   *string         `json:"subledgerID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Quantity      decimal.Decimal `json:"quantity"`
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	LocalAmount   decimal.Decimal `json:"localAmount"`
	Notes         string          `json:"notes"`
	AuditFields
}

// ApprovalStep is one row of the journal_workflow_steps table.
type ApprovalStep struct {
	JournalID  string     `json:"journalID"`
	Step       int        `json:"step"`
	AssignedTo string     `json:"assignedTo"`
	Status     string     `json:"status"`
	ActedBy    *string    `json:"actedBy"`
	ActedAt    *time.Time `json:"actedAt"`
	Comment    string     `json:"comment"`
}

// HistoryEntry is one row of the journal_history table. Rows are append-only.
type HistoryEntry struct {
	EntryID     string    `json:"entryID"` // Primary Key (UUID)
	JournalID   string    `json:"journalID"`
	At          time.Time `json:"at"`
	Actor       string    `json:"actor"`
	Action      string    `json:"action"`
	Step        *int      `json:"step"`
	DelegatedTo *string   `json:"delegatedTo"`
	Comment     string    `json:"comment"`
}
