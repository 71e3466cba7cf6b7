package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// CreateLedgerLineRequest is one proposed line of a new journal. Exactly one
// of accountID/subledgerID must be set; the validator rejects the whole batch
// otherwise.
type CreateLedgerLineRequest struct {
	Sequence     int             `json:"sequence"`
	IsHeader     bool            `json:"isHeader"`
	AccountID    *string         `json:"accountID"`
	SubledgerID  *string         `json:"subledgerID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Quantity     decimal.Decimal `json:"quantity"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Notes        string          `json:"notes"`
}

// CreateJournalRequest creates a journal in DRAFT (or POSTED when posted
// directly without a workflow).
type CreateJournalRequest struct {
	CompanyCode           string                    `json:"companyCode"` // empty = global (GJ) numbering
	Date                  time.Time                 `json:"date" binding:"required"`
	Reference             string                    `json:"reference"`
	Description           string                    `json:"description" binding:"required"`
	CurrencyCode          string                    `json:"currencyCode" binding:"required,len=3"`
	TemplateID            *string                   `json:"templateID"`
	AllowHeader           bool                      `json:"allowHeader"`
	AllowSingleHeaderOnly bool                      `json:"allowSingleHeaderOnly"`
	Lines                 []CreateLedgerLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalStatusRequest requests a one-step status transition.
type UpdateJournalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitForApprovalRequest attaches an approval chain and submits the journal.
type SubmitForApprovalRequest struct {
	Assignees []string `json:"assignees" binding:"required,min=1,dive,required"`
}

// ApprovalDecisionRequest records a decision on the journal's current step.
type ApprovalDecisionRequest struct {
	Step     int    `json:"step" binding:"required,min=1"`
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED CHANGES_REQUESTED"`
	Comment  string `json:"comment"`
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	CompanyCode string  `form:"companyCode"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// LedgerLineResponse is the wire form of a persisted ledger line.
type LedgerLineResponse struct {
	LineID        string          `json:"lineID"`
	LineNum       int             `json:"lineNum"`
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
}

// JournalResponse is the wire form of a journal.
type JournalResponse struct {
	JournalID     string                `json:"journalID"`
	CompanyCode   string                `json:"companyCode,omitempty"`
	JournalNumber string                `json:"journalNumber"`
	Date          time.Time             `json:"date"`
	Reference     string                `json:"reference,omitempty"`
	Description   string                `json:"description"`
	CurrencyCode  string                `json:"currencyCode"`
	Status        domain.JournalStatus  `json:"status"`
	Amount        decimal.Decimal       `json:"amount"`
	CurrentStep   int                   `json:"currentStep,omitempty"`
	SubmittedAt   *time.Time            `json:"submittedAt,omitempty"`
	Workflow      []domain.ApprovalStep `json:"workflow,omitempty"`
	History       []domain.HistoryEntry `json:"history,omitempty"`
	Lines         []LedgerLineResponse  `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// ListJournalsResponse wraps a journal page with its continuation token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLedgerLineResponse converts a domain line to its wire form.
func ToLedgerLineResponse(l *domain.LedgerLine) LedgerLineResponse {
	return LedgerLineResponse{
		LineID:        l.LineID,
		LineNum:       l.LineNum,
		IsHeader:      l.IsHeader,
		ParentLineNum: l.ParentLineNum,
		AccountID:     l.AccountID,
		SubledgerID:   l.SubledgerID,
		Debit:         l.Debit,
		Credit:        l.Credit,
		Quantity:      l.Quantity,
		CurrencyCode:  l.CurrencyCode,
		ExchangeRate:  l.ExchangeRate,
		LocalAmount:   l.LocalAmount,
		Notes:         l.Notes,
	}
}

// ToJournalResponse converts a domain journal to its wire form.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:     j.JournalID,
		CompanyCode:   j.CompanyCode,
		JournalNumber: j.JournalNumber,
		Date:          j.JournalDate,
		Reference:     j.Reference,
		Description:   j.Description,
		CurrencyCode:  j.CurrencyCode,
		Status:        j.Status,
		Amount:        j.Amount,
		CurrentStep:   j.CurrentStep,
		SubmittedAt:   j.SubmittedAt,
		Workflow:      j.Workflow,
		History:       j.History,
		CreatedAt:     j.CreatedAt,
		CreatedBy:     j.CreatedBy,
	}
	for i := range j.Lines {
		resp.Lines = append(resp.Lines, ToLedgerLineResponse(&j.Lines[i]))
	}
	return resp
}
