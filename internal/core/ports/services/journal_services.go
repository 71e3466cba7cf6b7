package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines, workflow and history.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data.
type JournalWriterSvc interface {
	// CreateJournal validates, numbers and persists a new journal with its lines.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error)

	// UpdateJournalStatus applies a one-step status transition.
	UpdateJournalStatus(ctx context.Context, journalID string, target domain.JournalStatus, actor domain.Actor) (*domain.Journal, error)

	// ReverseJournal creates and posts a reversal of a posted journal.
	ReverseJournal(ctx context.Context, journalID string, actor domain.Actor) (*domain.Journal, error)
}

// JournalApprovalSvc defines the approval workflow operations.
type JournalApprovalSvc interface {
	// SubmitForApproval attaches an approval chain and moves the journal to
	// SUBMITTED with its step pointer on step 1.
	SubmitForApproval(ctx context.Context, journalID string, assignees []string, actor domain.Actor) (*domain.Journal, error)

	// RecordApprovalDecision records a decision on the journal's current step.
	// Approving the final step posts the journal.
	RecordApprovalDecision(ctx context.Context, journalID string, req dto.ApprovalDecisionRequest, actor domain.Actor) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalApprovalSvc
}
