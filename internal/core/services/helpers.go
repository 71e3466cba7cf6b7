package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

var decimalOne = decimal.NewFromInt(1)

// guardTransition runs the document state machine guard and maps its error
// onto the sentinel the handlers translate into an HTTP status: a missing
// privilege is forbidden, a disallowed step is a conflict with the current
// state.
func guardTransition[S ~string](m domain.StateMachine[S], docType string, from, to S, actor domain.Actor) error {
	err := m.Guard(docType, from, to, actor)
	if err == nil {
		return nil
	}

	var ite *domain.InvalidTransitionError
	if errors.As(err, &ite) && ite.NeedsElevation {
		return fmt.Errorf("%w: %w", apperrors.ErrForbidden, err)
	}
	return fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
}

// normalizeLimit clamps a caller-supplied page size into the allowed range.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
