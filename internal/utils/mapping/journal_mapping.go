package mapping

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:             d.JournalID,
		CompanyCode:           d.CompanyCode,
		JournalNumber:         d.JournalNumber,
		SequenceNo:            d.SequenceNo,
		JournalDate:           d.JournalDate,
		Reference:             d.Reference,
		Description:           d.Description,
		CurrencyCode:          d.CurrencyCode,
		Status:                models.JournalStatus(d.Status),
		Amount:                d.Amount,
		TemplateID:            d.TemplateID,
		AllowHeader:           d.AllowHeader,
		AllowSingleHeaderOnly: d.AllowSingleHeaderOnly,
		OriginalJournalID:     d.OriginalJournalID,
		ReversingJournalID:    d.ReversingJournalID,
		CurrentStep:           d.CurrentStep,
		SubmittedAt:           d.SubmittedAt,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:             m.JournalID,
		CompanyCode:           m.CompanyCode,
		JournalNumber:         m.JournalNumber,
		SequenceNo:            m.SequenceNo,
		JournalDate:           m.JournalDate,
		Reference:             m.Reference,
		Description:           m.Description,
		CurrencyCode:          m.CurrencyCode,
		Status:                domain.JournalStatus(m.Status),
		Amount:                m.Amount,
		TemplateID:            m.TemplateID,
		AllowHeader:           m.AllowHeader,
		AllowSingleHeaderOnly: m.AllowSingleHeaderOnly,
		OriginalJournalID:     m.OriginalJournalID,
		ReversingJournalID:    m.ReversingJournalID,
		CurrentStep:           m.CurrentStep,
		SubmittedAt:           m.SubmittedAt,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:        d.LineID,
		JournalID:     d.JournalID,
		LineNum:       d.LineNum,
		Sequence:      d.Sequence,
		IsHeader:      d.IsHeader,
		ParentLineNum: d.ParentLineNum,
		AccountID:     d.AccountID,
		SubledgerID:   d.SubledgerID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Quantity:      d.Quantity,
		CurrencyCode:  d.CurrencyCode,
		ExchangeRate:  d.ExchangeRate,
		LocalAmount:   d.LocalAmount,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:        m.LineID,
		JournalID:     m.JournalID,
		LineNum:       m.LineNum,
		Sequence:      m.Sequence,
		IsHeader:      m.IsHeader,
		ParentLineNum: m.ParentLineNum,
		AccountID:     m.AccountID,
		SubledgerID:   m.SubledgerID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Quantity:      m.Quantity,
		CurrencyCode:  m.CurrencyCode,
		ExchangeRate:  m.ExchangeRate,
		LocalAmount:   m.LocalAmount,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalStep converts a model ApprovalStep to a domain ApprovalStep
func ToDomainApprovalStep(m models.ApprovalStep) domain.ApprovalStep {
	return domain.ApprovalStep{
		Step:       m.Step,
		AssignedTo: m.AssignedTo,
		Status:     domain.ApprovalStepStatus(m.Status),
		ActedBy:    m.ActedBy,
		ActedAt:    m.ActedAt,
		Comment:    m.Comment,
	}
}

// ToDomainHistoryEntry converts a model HistoryEntry to a domain HistoryEntry
func ToDomainHistoryEntry(m models.HistoryEntry) domain.HistoryEntry {
	return domain.HistoryEntry{
		EntryID:     m.EntryID,
		JournalID:   m.JournalID,
		At:          m.At,
		Actor:       m.Actor,
		Action:      domain.HistoryAction(m.Action),
		Step:        m.Step,
		DelegatedTo: m.DelegatedTo,
		Comment:     m.Comment,
	}
}
