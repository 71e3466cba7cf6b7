package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
	"github.com/finbooks/erp_ledger_app/internal/utils/accounting"
	"github.com/finbooks/erp_ledger_app/internal/utils/numbering"
)

var (
	ErrJournalNotPosted       = errors.New("journal must be posted to be reversed")
	ErrJournalAlreadyReversed = errors.New("journal already has a reversal")
	ErrWorkflowNotPending     = errors.New("journal has no pending approval step")
	ErrStepOutOfOrder         = errors.New("decision does not target the current step")
	ErrStepAlreadyDecided     = errors.New("approval step has already been decided")
	ErrNotAssignee            = errors.New("actor is not the assignee of the current step")
	ErrWorkflowAttached       = errors.New("journal already has an approval workflow")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	journalListCacheKey = "list:journals"
)

// journalService provides journal creation, numbering, status transitions,
// reversal and approval workflow operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	auditRepo   portsrepo.AuditLogRepository
	sequenceSvc portssvc.SequenceAllocatorSvc
	cache       portssvc.CacheInvalidator
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, sequenceSvc portssvc.SequenceAllocatorSvc, auditRepo portsrepo.AuditLogRepository, cache portssvc.CacheInvalidator) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		auditRepo:   auditRepo,
		sequenceSvc: sequenceSvc,
		cache:       cache,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// journalScope returns the sequence scope and number formatter for a company.
// Journals without a company code draw from the global GJ sequence.
func journalScope(companyCode string) (string, func(int64) string) {
	if companyCode == "" {
		return numbering.ScopeGeneralJournal, numbering.GeneralJournalNumber
	}
	return numbering.LocalJournalScope(companyCode), func(v int64) string {
		return numbering.LocalJournalNumber(companyCode, v)
	}
}

// CreateJournal validates, numbers and persists a new journal.
//
// Lines are validated before a sequence number is burned, so rejected input
// leaves no gap. If the persist itself fails the allocated number is handed
// back best effort; a lost release leaves a gap, never a duplicate.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	proposed := make([]domain.LedgerLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		rate := l.ExchangeRate
		if rate.IsZero() {
			rate = decimalOne
		}
		proposed = append(proposed, domain.LedgerLine{
			Sequence:     l.Sequence,
			IsHeader:     l.IsHeader,
			AccountID:    l.AccountID,
			SubledgerID:  l.SubledgerID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			Quantity:     l.Quantity,
			CurrencyCode: req.CurrencyCode,
			ExchangeRate: rate,
			Notes:        l.Notes,
		})
	}

	normalized, err := accounting.NormalizeLines(proposed, accounting.LineRules{
		AllowHeader:           req.AllowHeader,
		AllowSingleHeaderOnly: req.AllowSingleHeaderOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	scope, format := journalScope(req.CompanyCode)
	rng, err := s.sequenceSvc.Allocate(ctx, scope, 1)
	if err != nil {
		return nil, err
	}

	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	for i := range normalized {
		normalized[i].LineID = uuid.NewString()
		normalized[i].JournalID = journalID
		normalized[i].AuditFields = audit
	}

	journal := domain.Journal{
		JournalID:             journalID,
		CompanyCode:           req.CompanyCode,
		JournalNumber:         format(rng.First),
		SequenceNo:            rng.First,
		JournalDate:           req.Date,
		Reference:             req.Reference,
		Description:           req.Description,
		CurrencyCode:          req.CurrencyCode,
		Status:                domain.JournalDraft,
		Amount:                accounting.TotalDebits(normalized),
		TemplateID:            req.TemplateID,
		AllowHeader:           req.AllowHeader,
		AllowSingleHeaderOnly: req.AllowSingleHeaderOnly,
		AuditFields:           audit,
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, normalized); err != nil {
		logger.Error("Failed to save journal, releasing sequence number",
			slog.String("journal_number", journal.JournalNumber),
			slog.String("error", err.Error()),
		)
		if relErr := s.sequenceSvc.Release(ctx, scope, 1); relErr != nil {
			logger.Warn("Sequence release after failed save did not succeed",
				slog.String("scope_key", scope),
				slog.String("error", relErr.Error()),
			)
		}
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created",
		slog.String("journal_id", journalID),
		slog.String("journal_number", journal.JournalNumber),
	)

	writeAudit(ctx, s.auditRepo, actor, "journal", "create", journalID, map[string]any{
		"journalNumber": journal.JournalNumber,
		"amount":        journal.Amount.String(),
	})
	s.invalidateLists(ctx)

	journal.Lines = normalized
	return &journal, nil
}

// GetJournalByID retrieves a journal with its lines, workflow and history.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

// ListJournals retrieves a paginated list of journals.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := normalizeLimit(params.Limit)

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, params.CompanyCode, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{NextToken: nextToken}
	for i := range journals {
		resp.Journals = append(resp.Journals, dto.ToJournalResponse(&journals[i]))
	}
	return resp, nil
}

// UpdateJournalStatus applies a one-step status transition. Reversal has its
// own endpoint because it creates a journal; requesting REVERSED here is
// rejected.
func (s *journalService) UpdateJournalStatus(ctx context.Context, journalID string, target domain.JournalStatus, actor domain.Actor) (*domain.Journal, error) {
	if target == domain.JournalReversed {
		return nil, fmt.Errorf("%w: reversal must go through the reverse operation", apperrors.ErrValidation)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	if err := guardTransition(domain.JournalTransitions(), "journal", journal.Status, target, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, target, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to update journal status: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Journal status changed",
		slog.String("journal_id", journalID),
		slog.String("from", string(journal.Status)),
		slog.String("to", string(target)),
	)

	writeAudit(ctx, s.auditRepo, actor, "journal", "status-change", journalID, map[string]any{
		"from": string(journal.Status),
		"to":   string(target),
	})
	s.invalidateLists(ctx)

	journal.Status = target
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actor.UserID
	return journal, nil
}

// ReverseJournal creates and posts a reversal of a posted (or adjusted)
// journal. The reversal swaps every line's debit and credit, negates
// quantities, draws a fresh number from the same scope and links both
// journals; the original moves to REVERSED in the same transaction.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, actor domain.Actor) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if !domain.JournalTransitions().CanTransition(original.Status, domain.JournalReversed) {
		return nil, fmt.Errorf("%w: status %s: %w", apperrors.ErrConflict, original.Status, ErrJournalNotPosted)
	}
	if original.ReversingJournalID != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrJournalAlreadyReversed)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}

	swapped := make([]domain.LedgerLine, 0, len(lines))
	for _, l := range lines {
		r := l
		r.Debit, r.Credit = l.Credit, l.Debit
		r.Quantity = l.Quantity.Neg()
		swapped = append(swapped, r)
	}
	normalized, err := accounting.NormalizeLines(swapped, accounting.LineRules{
		AllowHeader:           original.AllowHeader,
		AllowSingleHeaderOnly: original.AllowSingleHeaderOnly,
	})
	if err != nil {
		// A stored journal always normalizes; this indicates corrupt data.
		return nil, fmt.Errorf("%w: reversal of journal %s failed validation: %w", apperrors.ErrInternal, journalID, err)
	}

	scope, format := journalScope(original.CompanyCode)
	rng, err := s.sequenceSvc.Allocate(ctx, scope, 1)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}
	reversingID := uuid.NewString()
	for i := range normalized {
		normalized[i].LineID = uuid.NewString()
		normalized[i].JournalID = reversingID
		normalized[i].AuditFields = audit
	}

	reversing := domain.Journal{
		JournalID:             reversingID,
		CompanyCode:           original.CompanyCode,
		JournalNumber:         format(rng.First),
		SequenceNo:            rng.First,
		JournalDate:           now,
		Reference:             original.JournalNumber,
		Description:           fmt.Sprintf("Reversal of %s", original.JournalNumber),
		CurrencyCode:          original.CurrencyCode,
		Status:                domain.JournalPosted,
		Amount:                accounting.TotalDebits(normalized),
		AllowHeader:           original.AllowHeader,
		AllowSingleHeaderOnly: original.AllowSingleHeaderOnly,
		OriginalJournalID:     &original.JournalID,
		AuditFields:           audit,
	}

	if err := s.journalRepo.SaveReversal(ctx, reversing, normalized, original.JournalID); err != nil {
		logger.Error("Failed to save reversal, releasing sequence number",
			slog.String("journal_id", journalID),
			slog.String("error", err.Error()),
		)
		if relErr := s.sequenceSvc.Release(ctx, scope, 1); relErr != nil {
			logger.Warn("Sequence release after failed reversal did not succeed",
				slog.String("scope_key", scope),
				slog.String("error", relErr.Error()),
			)
		}
		return nil, fmt.Errorf("failed to save reversal of journal %s: %w", journalID, err)
	}

	logger.Info("Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversing_journal_id", reversingID),
		slog.String("reversing_number", reversing.JournalNumber),
	)

	writeAudit(ctx, s.auditRepo, actor, "journal", "status-change", journalID, map[string]any{
		"to":                  string(domain.JournalReversed),
		"reversingJournalID":  reversingID,
		"reversingJournalNum": reversing.JournalNumber,
	})
	s.invalidateLists(ctx)

	reversing.Lines = normalized
	return &reversing, nil
}

// SubmitForApproval attaches an approval chain and moves the journal to
// SUBMITTED with the step pointer on step 1.
func (s *journalService) SubmitForApproval(ctx context.Context, journalID string, assignees []string, actor domain.Actor) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.HasWorkflow() && journal.Status == domain.JournalSubmitted {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrWorkflowAttached)
	}
	if err := guardTransition(domain.JournalTransitions(), "journal", journal.Status, domain.JournalSubmitted, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	steps := make([]domain.ApprovalStep, 0, len(assignees))
	for i, assignee := range assignees {
		steps = append(steps, domain.ApprovalStep{
			Step:       i + 1,
			AssignedTo: assignee,
			Status:     domain.StepPending,
		})
	}

	stepOne := 1
	history := []domain.HistoryEntry{{
		EntryID:   uuid.NewString(),
		JournalID: journalID,
		At:        now,
		Actor:     actor.UserID,
		Action:    domain.HistorySubmit,
		Step:      &stepOne,
	}}

	// One transaction: steps, pointer, SUBMITTED status and history land
	// together or not at all.
	if err := s.journalRepo.SaveWorkflow(ctx, journalID, steps, 1, &now, domain.JournalSubmitted, history, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to save workflow for journal %s: %w", journalID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Journal submitted for approval",
		slog.String("journal_id", journalID),
		slog.Int("steps", len(steps)),
	)
	writeAudit(ctx, s.auditRepo, actor, "journal", "status-change", journalID, map[string]any{
		"to":    string(domain.JournalSubmitted),
		"steps": len(steps),
	})
	s.invalidateLists(ctx)

	journal.Status = domain.JournalSubmitted
	journal.Workflow = steps
	journal.CurrentStep = 1
	journal.SubmittedAt = &now
	journal.History = append(journal.History, history...)
	return journal, nil
}

// RecordApprovalDecision records a decision on the journal's current step.
// Decisions are accepted only from the step's assignee (or an elevated
// actor), only for the step the pointer is on, and only once per step.
// Approving the final step posts the journal; a rejection moves it to
// REJECTED; requested changes send it back to DRAFT for editing.
func (s *journalService) RecordApprovalDecision(ctx context.Context, journalID string, req dto.ApprovalDecisionRequest, actor domain.Actor) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.Status != domain.JournalSubmitted {
		return nil, fmt.Errorf("%w: journal is %s: %w", apperrors.ErrConflict, journal.Status, ErrWorkflowNotPending)
	}

	pending := journal.PendingStep()
	if pending == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrWorkflowNotPending)
	}
	if req.Step != journal.CurrentStep {
		return nil, fmt.Errorf("%w: step %d is not current step %d: %w", apperrors.ErrConflict, req.Step, journal.CurrentStep, ErrStepOutOfOrder)
	}
	if pending.Status != domain.StepPending {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrStepAlreadyDecided)
	}
	if pending.AssignedTo != actor.UserID && !actor.Elevated {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrNotAssignee)
	}

	now := time.Now()
	decision := domain.ApprovalStepStatus(req.Decision)
	decided := *pending
	decided.Status = decision
	decided.ActedBy = &actor.UserID
	decided.ActedAt = &now
	decided.Comment = req.Comment

	var action domain.HistoryAction
	nextStep := journal.CurrentStep
	var statusAfter *domain.JournalStatus

	switch decision {
	case domain.StepApproved:
		action = domain.HistoryApprove
		if journal.CurrentStep >= len(journal.Workflow) {
			// Final step: the journal clears approval and posts. APPROVED is
			// transient; POSTED is what the decision persists.
			posted := domain.JournalPosted
			statusAfter = &posted
		} else {
			nextStep = journal.CurrentStep + 1
		}
	case domain.StepRejected:
		action = domain.HistoryReject
		rejected := domain.JournalRejected
		statusAfter = &rejected
	case domain.StepChangesRequested:
		action = domain.HistoryRequestChanges
		draft := domain.JournalDraft
		statusAfter = &draft
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, req.Decision)
	}

	step := decided.Step
	entry := domain.HistoryEntry{
		EntryID:   uuid.NewString(),
		JournalID: journalID,
		At:        now,
		Actor:     actor.UserID,
		Action:    action,
		Step:      &step,
		Comment:   req.Comment,
	}

	// Step decision, pointer move, status change and history ride one repo
	// transaction; the step can never end up decided with the journal stuck.
	if err := s.journalRepo.UpdateWorkflowStep(ctx, journalID, decided, nextStep, statusAfter, entry, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to record decision on journal %s: %w", journalID, err)
	}

	journal.Status = domain.JournalSubmitted
	if statusAfter != nil {
		journal.Status = *statusAfter
	}

	middleware.GetLoggerFromCtx(ctx).Info("Approval decision recorded",
		slog.String("journal_id", journalID),
		slog.Int("step", decided.Step),
		slog.String("decision", string(decision)),
		slog.String("status", string(journal.Status)),
	)
	writeAudit(ctx, s.auditRepo, actor, "journal", "status-change", journalID, map[string]any{
		"step":     decided.Step,
		"decision": string(decision),
		"status":   string(journal.Status),
	})
	s.invalidateLists(ctx)

	*journal.PendingStep() = decided
	journal.CurrentStep = nextStep
	journal.History = append(journal.History, entry)
	return journal, nil
}

func (s *journalService) invalidateLists(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, journalListCacheKey)
	}
}
