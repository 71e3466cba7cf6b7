package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/models"
	"github.com/finbooks/erp_ledger_app/internal/utils/mapping"
	"github.com/finbooks/erp_ledger_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, company_code, journal_number, sequence_no, journal_date,
	reference, description, currency_code, status, amount, template_id,
	allow_header, allow_single_header_only, original_journal_id,
	reversing_journal_id, current_step, submitted_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID, &m.CompanyCode, &m.JournalNumber, &m.SequenceNo, &m.JournalDate,
		&m.Reference, &m.Description, &m.CurrencyCode, &m.Status, &m.Amount, &m.TemplateID,
		&m.AllowHeader, &m.AllowSingleHeaderOnly, &m.OriginalJournalID,
		&m.ReversingJournalID, &m.CurrentStep, &m.SubmittedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// insertJournalTx inserts the journal header row inside tx.
func (r *PgxJournalRepository) insertJournalTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID, m.CompanyCode, m.JournalNumber, m.SequenceNo, m.JournalDate,
		m.Reference, m.Description, m.CurrencyCode, m.Status, m.Amount, m.TemplateID,
		m.AllowHeader, m.AllowSingleHeaderOnly, m.OriginalJournalID,
		m.ReversingJournalID, m.CurrentStep, m.SubmittedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}
	return nil
}

// insertLinesTx batch-inserts ledger lines inside tx.
func (r *PgxJournalRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.LedgerLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (
			line_id, journal_id, line_num, sequence, is_header, parent_line_num,
			account_id, subledger_id, debit, credit, quantity, currency_code,
			exchange_rate, local_amount, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	for _, line := range lines {
		m := mapping.ToModelLedgerLine(line)
		batch.Queue(lineQuery,
			m.LineID, m.JournalID, m.LineNum, m.Sequence, m.IsHeader, m.ParentLineNum,
			m.AccountID, m.SubledgerID, m.Debit, m.Credit, m.Quantity, m.CurrencyCode,
			m.ExchangeRate, m.LocalAmount, m.Notes,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger line", err)
		}
	}
	return nil
}

// SaveJournal persists a journal header with its lines within one database
// transaction. All-or-nothing: any line failure rolls back the whole journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.LedgerLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertJournalTx(ctx, tx, journal); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversing journal with its lines and marks the
// original REVERSED with the linkage, all in one transaction. The original
// row is locked first so two concurrent reversals cannot both succeed.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversing domain.Journal, lines []domain.LedgerLine, originalJournalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var reversingID *string
	lockQuery := `SELECT reversing_journal_id FROM journals WHERE journal_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, originalJournalID).Scan(&reversingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("journal " + originalJournalID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock journal "+originalJournalID, err)
	}
	if reversingID != nil {
		return apperrors.NewAppError(409, "journal "+originalJournalID+" already reversed", apperrors.ErrConflict)
	}

	if err := r.insertJournalTx(ctx, tx, reversing); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journals
		SET status = $2, reversing_journal_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		originalJournalID, string(domain.JournalReversed), reversing.JournalID,
		reversing.LastUpdatedAt, reversing.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+originalJournalID+" reversed", err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal header with its workflow steps and
// history trail. Lines are fetched separately.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal " + journalID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}
	journal := mapping.ToDomainJournal(m)

	steps, err := r.findWorkflowSteps(ctx, journalID)
	if err != nil {
		return nil, err
	}
	journal.Workflow = steps

	history, err := r.findHistory(ctx, journalID)
	if err != nil {
		return nil, err
	}
	journal.History = history

	return &journal, nil
}

func (r *PgxJournalRepository) findWorkflowSteps(ctx context.Context, journalID string) ([]domain.ApprovalStep, error) {
	query := `
		SELECT journal_id, step, assigned_to, status, acted_by, acted_at, comment
		FROM journal_workflow_steps
		WHERE journal_id = $1
		ORDER BY step;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workflow steps for journal "+journalID, err)
	}
	defer rows.Close()

	var steps []domain.ApprovalStep
	for rows.Next() {
		var m models.ApprovalStep
		if err := rows.Scan(&m.JournalID, &m.Step, &m.AssignedTo, &m.Status, &m.ActedBy, &m.ActedAt, &m.Comment); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workflow step", err)
		}
		steps = append(steps, mapping.ToDomainApprovalStep(m))
	}
	return steps, rows.Err()
}

func (r *PgxJournalRepository) findHistory(ctx context.Context, journalID string) ([]domain.HistoryEntry, error) {
	query := `
		SELECT entry_id, journal_id, at, actor, action, step, delegated_to, comment
		FROM journal_history
		WHERE journal_id = $1
		ORDER BY at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for journal "+journalID, err)
	}
	defer rows.Close()

	var history []domain.HistoryEntry
	for rows.Next() {
		var m models.HistoryEntry
		if err := rows.Scan(&m.EntryID, &m.JournalID, &m.At, &m.Actor, &m.Action, &m.Step, &m.DelegatedTo, &m.Comment); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history entry", err)
		}
		history = append(history, mapping.ToDomainHistoryEntry(m))
	}
	return history, rows.Err()
}

// FindLinesByJournalID retrieves all ledger lines of a journal in line
// number order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT line_id, journal_id, line_num, sequence, is_header, parent_line_num,
			account_id, subledger_id, debit, credit, quantity, currency_code,
			exchange_rate, local_amount, notes,
			created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_lines
		WHERE journal_id = $1
		ORDER BY line_num;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var m models.LedgerLine
		err := rows.Scan(
			&m.LineID, &m.JournalID, &m.LineNum, &m.Sequence, &m.IsHeader, &m.ParentLineNum,
			&m.AccountID, &m.SubledgerID, &m.Debit, &m.Credit, &m.Quantity, &m.CurrencyCode,
			&m.ExchangeRate, &m.LocalAmount, &m.Notes,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line", err)
		}
		lines = append(lines, mapping.ToDomainLedgerLine(m))
	}
	return lines, rows.Err()
}

// ListJournals retrieves a page of journal headers ordered by journal date
// then creation time, newest first. The continuation token encodes the sort
// keys of the last row; one extra row is fetched to detect a next page.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyCode string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	fetchLimit := limit + 1
	args := []interface{}{companyCode, fetchLimit}
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_code = $1`

	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (journal_date, created_at) < ($3, $4)`
		args = append(args, journalDate, createdAt)
	}
	query += ` ORDER BY journal_date DESC, created_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journals", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journals", err)
	}

	var token *string
	if len(journals) == fetchLimit {
		journals = journals[:limit]
		last := journals[limit-1]
		t := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &t
	}
	return journals, token, nil
}

// UpdateJournalStatus stamps a new status on a journal.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, journalID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journalID + " not found for update")
	}
	return nil
}

// SaveWorkflow replaces a journal's approval steps, sets the step pointer
// fields and the journal status and appends the given history entries,
// atomically. The status rides in the same transaction so a journal can
// never carry a workflow without reflecting it.
func (r *PgxJournalRepository) SaveWorkflow(ctx context.Context, journalID string, steps []domain.ApprovalStep, currentStep int, submittedAt *time.Time, status domain.JournalStatus, history []domain.HistoryEntry, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_workflow_steps WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to clear workflow steps for journal "+journalID, err)
	}

	batch := &pgx.Batch{}
	stepQuery := `
		INSERT INTO journal_workflow_steps (journal_id, step, assigned_to, status, acted_by, acted_at, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, step := range steps {
		batch.Queue(stepQuery, journalID, step.Step, step.AssignedTo, string(step.Status), step.ActedBy, step.ActedAt, step.Comment)
	}
	br := tx.SendBatch(ctx, batch)
	for range steps {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert workflow step", err)
		}
	}
	br.Close()

	pointerQuery := `
		UPDATE journals
		SET current_step = $2, submitted_at = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE journal_id = $1;
	`
	tag, err := tx.Exec(ctx, pointerQuery, journalID, currentStep, submittedAt, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workflow pointer of journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journalID + " not found for update")
	}

	if err := r.insertHistoryTx(ctx, tx, history); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateWorkflowStep writes the decision fields of a single step, moves the
// step pointer, stamps the resulting journal status when one applies and
// appends a history entry, atomically. Decision fields are written exactly
// once: the update only matches a PENDING row. A failure anywhere rolls the
// whole decision back, so a decided step always has its status propagated.
func (r *PgxJournalRepository) UpdateWorkflowStep(ctx context.Context, journalID string, step domain.ApprovalStep, currentStep int, statusAfter *domain.JournalStatus, entry domain.HistoryEntry, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stepQuery := `
		UPDATE journal_workflow_steps
		SET status = $3, acted_by = $4, acted_at = $5, comment = $6
		WHERE journal_id = $1 AND step = $2 AND status = 'PENDING';
	`
	tag, err := tx.Exec(ctx, stepQuery, journalID, step.Step, string(step.Status), step.ActedBy, step.ActedAt, step.Comment)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workflow step", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "workflow step already decided", apperrors.ErrConflict)
	}

	if statusAfter != nil {
		pointerQuery := `
			UPDATE journals
			SET current_step = $2, status = $3, last_updated_at = $4, last_updated_by = $5
			WHERE journal_id = $1;
		`
		if _, err := tx.Exec(ctx, pointerQuery, journalID, currentStep, string(*statusAfter), updatedAt, updatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to update workflow pointer of journal "+journalID, err)
		}
	} else {
		pointerQuery := `
			UPDATE journals
			SET current_step = $2, last_updated_at = $3, last_updated_by = $4
			WHERE journal_id = $1;
		`
		if _, err := tx.Exec(ctx, pointerQuery, journalID, currentStep, updatedAt, updatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to update workflow pointer of journal "+journalID, err)
		}
	}

	if err := r.insertHistoryTx(ctx, tx, []domain.HistoryEntry{entry}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertHistoryTx appends history rows inside tx. History is append-only;
// there is no update or delete path.
func (r *PgxJournalRepository) insertHistoryTx(ctx context.Context, tx pgx.Tx, history []domain.HistoryEntry) error {
	query := `
		INSERT INTO journal_history (entry_id, journal_id, at, actor, action, step, delegated_to, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, h := range history {
		_, err := tx.Exec(ctx, query, h.EntryID, h.JournalID, h.At, h.Actor, string(h.Action), h.Step, h.DelegatedTo, h.Comment)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert history entry", err)
		}
	}
	return nil
}
