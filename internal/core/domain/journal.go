package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft     JournalStatus = "DRAFT"
	JournalSubmitted JournalStatus = "SUBMITTED"
	JournalApproved  JournalStatus = "APPROVED"
	JournalPosted    JournalStatus = "POSTED"
	JournalRejected  JournalStatus = "REJECTED"
	JournalCancelled JournalStatus = "CANCELLED"
	JournalReversed  JournalStatus = "REVERSED"
	JournalAdjusted  JournalStatus = "ADJUSTED"
	// JournalAdminMode is the administrative escape state, reachable from and
	// reaching every non-terminal state. Gated behind elevated privilege.
	JournalAdminMode JournalStatus = "ADMIN_MODE"
)

// LedgerLine is a single line of a journal, affecting exactly one of an
// account or a subledger link.
type LedgerLine struct {
	LineID    string `json:"lineID"`
	JournalID string `json:"journalID"`
	// LineNum is assigned 1..N at save time, in Sequence order.
	LineNum int `json:"lineNum"`
	// Sequence is the caller-supplied ordering hint; ties keep input order.
	Sequence int  `json:"sequence"`
	IsHeader bool `json:"isHeader"`
	// ParentLineNum points at the nearest preceding header line. Computed,
	// never user-supplied. Nil for header lines and for journals without
	// header lines.
	ParentLineNum *int            `json:"parentLineNum"`
	AccountID     *string         `json:"accountID"`
	SubledgerID   *string         `json:"subledgerID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Quantity      decimal.Decimal `json:"quantity"`
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	// LocalAmount = (debit - credit) * exchangeRate, rounded to 2 places.
	LocalAmount decimal.Decimal `json:"localAmount"`
	Notes       string          `json:"notes"`
	AuditFields
}

// Journal represents a single, balanced accounting transaction composed of
// ordered ledger lines.
type Journal struct {
	JournalID   string `json:"journalID"`
	CompanyCode string `json:"companyCode"` // empty for global (GJ) numbering
	// JournalNumber and SequenceNo are assigned exactly once at creation and
	// never change.
	JournalNumber string          `json:"journalNumber"`
	SequenceNo    int64           `json:"sequenceNo"`
	JournalDate   time.Time       `json:"journalDate"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	CurrencyCode  string          `json:"currencyCode"`
	Status        JournalStatus   `json:"status"`
	Amount        decimal.Decimal `json:"amount"` // total debits, the journal's economic value
	TemplateID    *string         `json:"templateID"`
	// Header grouping rules, typically inherited from the template.
	AllowHeader           bool `json:"allowHeader"`
	AllowSingleHeaderOnly bool `json:"allowSingleHeaderOnly"`
	// Reversal linkage.
	OriginalJournalID  *string `json:"originalJournalID"`
	ReversingJournalID *string `json:"reversingJournalID"`
	// Workflow state. CurrentStep is 1-based; 0 means no workflow started.
	CurrentStep int            `json:"currentStep"`
	SubmittedAt *time.Time     `json:"submittedAt"`
	Workflow    []ApprovalStep `json:"workflow,omitempty"`
	History     []HistoryEntry `json:"history,omitempty"`
	Lines       []LedgerLine   `json:"lines,omitempty"`
	AuditFields
}

// HasWorkflow reports whether an approval chain is attached.
func (j *Journal) HasWorkflow() bool {
	return len(j.Workflow) > 0
}

// PendingStep returns the approval step matching currentStep, or nil.
func (j *Journal) PendingStep() *ApprovalStep {
	for i := range j.Workflow {
		if j.Workflow[i].Step == j.CurrentStep {
			return &j.Workflow[i]
		}
	}
	return nil
}

// journalTransitions is the one-step transition whitelist for journals.
// ADMIN_MODE is handled as an escape state by the state machine itself.
var journalTransitions = StateMachine[JournalStatus]{
	Transitions: map[JournalStatus][]JournalStatus{
		JournalDraft:     {JournalSubmitted, JournalPosted, JournalCancelled},
		JournalSubmitted: {JournalApproved, JournalRejected, JournalDraft},
		JournalApproved:  {JournalPosted, JournalRejected},
		JournalPosted:    {JournalReversed, JournalAdjusted},
		JournalRejected:  {JournalDraft, JournalCancelled},
		JournalAdjusted:  {JournalReversed},
	},
	Escape: []JournalStatus{JournalAdminMode},
}

// JournalTransitions returns the journal state machine.
func JournalTransitions() StateMachine[JournalStatus] {
	return journalTransitions
}
