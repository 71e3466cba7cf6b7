package repositories

import (
	"context"
	"time"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal header with its workflow steps and
	// history trail. Lines are fetched separately.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindLinesByJournalID retrieves all ledger lines of a journal in line
	// number order.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerLine, error)

	// ListJournals retrieves a paginated list of journal headers using
	// token-based pagination. An empty companyCode lists global journals.
	ListJournals(ctx context.Context, companyCode string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal persists a journal header, its lines and any workflow rows
	// within one database transaction. All-or-nothing: partial posting is
	// never allowed.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.LedgerLine) error

	// SaveReversal persists the reversing journal with its lines and marks
	// the original journal REVERSED with the reversal linkage, atomically.
	SaveReversal(ctx context.Context, reversing domain.Journal, lines []domain.LedgerLine, originalJournalID string) error

	// UpdateJournalStatus stamps a new status on a journal.
	UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, updatedBy string, updatedAt time.Time) error

	// SaveWorkflow replaces a journal's approval steps, sets the pointer
	// fields and the journal status and appends the given history entries,
	// all in one transaction.
	SaveWorkflow(ctx context.Context, journalID string, steps []domain.ApprovalStep, currentStep int, submittedAt *time.Time, status domain.JournalStatus, history []domain.HistoryEntry, updatedBy string, updatedAt time.Time) error

	// UpdateWorkflowStep writes the decision fields of a single step, moves
	// the currentStep pointer, stamps statusAfter when non-nil and appends a
	// history entry, all in one transaction. A failure anywhere leaves the
	// step undecided.
	UpdateWorkflowStep(ctx context.Context, journalID string, step domain.ApprovalStep, currentStep int, statusAfter *domain.JournalStatus, entry domain.HistoryEntry, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
