// Package accounting holds the pure calculation and validation logic shared
// by services and repositories: ledger line normalization, double-entry
// balance checks and order settlement math.
package accounting

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// moneyPlaces is the fixed precision for monetary comparisons. Rounding is
// half away from zero, matching accumulated ledger behavior.
const moneyPlaces = 2

// BalanceMismatchError reports unequal debit and credit totals, carrying both
// for diagnostics.
type BalanceMismatchError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("journal does not balance: debits %s, credits %s",
		e.DebitTotal.StringFixed(moneyPlaces), e.CreditTotal.StringFixed(moneyPlaces))
}

// GroupingViolationError reports a header group whose line quantities do not
// net to zero. GroupKey is the header's line number (or the line's own number
// for ungrouped lines).
type GroupingViolationError struct {
	GroupKey int
	Sum      decimal.Decimal
}

func (e *GroupingViolationError) Error() string {
	return fmt.Sprintf("line group %d quantity does not net to zero: sum is %s",
		e.GroupKey, e.Sum.StringFixed(moneyPlaces))
}

// NegativeAmountError reports a line carrying a negative debit or credit.
// Direction lives in the column, never in the sign; a negative debit is a
// disguised credit and would corrupt the balance check.
type NegativeAmountError struct {
	LineNum int
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("line %d has a negative amount; use the opposite column instead", e.LineNum)
}

// DualReferenceError reports a line with both or neither of an account and a
// subledger reference. The whole batch is rejected.
type DualReferenceError struct {
	LineNum int
}

func (e *DualReferenceError) Error() string {
	return fmt.Sprintf("line %d must reference exactly one of account or subledger", e.LineNum)
}

// MultipleHeadersError reports more than one header line where a single
// header is mandated.
type MultipleHeadersError struct {
	Count int
}

func (e *MultipleHeadersError) Error() string {
	return fmt.Sprintf("journal allows a single header line but has %d", e.Count)
}

// LineRules carries the per-journal validation switches, typically inherited
// from the journal template.
type LineRules struct {
	AllowHeader           bool
	AllowSingleHeaderOnly bool
}

// NormalizeLines orders, numbers and validates a proposed set of ledger
// lines. On success it returns a copy of the lines with LineNum (1..N in
// Sequence order, ties keeping input order), ParentLineNum (nearest preceding
// header) and LocalAmount assigned. Any violation is fatal to the whole
// batch; partial posting is never allowed.
func NormalizeLines(lines []domain.LedgerLine, rules LineRules) ([]domain.LedgerLine, error) {
	out := make([]domain.LedgerLine, len(lines))
	copy(out, lines)

	// Pass 1: assign line order. Stable sort keeps input order on ties so the
	// numbering is reproducible regardless of storage iteration order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sequence < out[j].Sequence
	})
	for i := range out {
		out[i].LineNum = i + 1
	}

	headerCount := 0
	for i := range out {
		if out[i].Debit.IsNegative() || out[i].Credit.IsNegative() {
			return nil, &NegativeAmountError{LineNum: out[i].LineNum}
		}
		refs := 0
		if out[i].AccountID != nil && *out[i].AccountID != "" {
			refs++
		}
		if out[i].SubledgerID != nil && *out[i].SubledgerID != "" {
			refs++
		}
		if refs != 1 {
			return nil, &DualReferenceError{LineNum: out[i].LineNum}
		}
		if out[i].IsHeader {
			headerCount++
		}
	}

	if rules.AllowSingleHeaderOnly && headerCount > 1 {
		return nil, &MultipleHeadersError{Count: headerCount}
	}

	// Pass 2: parent grouping by nearest preceding header.
	var currentHeader *int
	for i := range out {
		if out[i].IsHeader {
			n := out[i].LineNum
			currentHeader = &n
			out[i].ParentLineNum = nil
			continue
		}
		if currentHeader != nil {
			n := *currentHeader
			out[i].ParentLineNum = &n
		} else {
			out[i].ParentLineNum = nil
		}
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for i := range out {
		debitTotal = debitTotal.Add(out[i].Debit)
		creditTotal = creditTotal.Add(out[i].Credit)
		out[i].LocalAmount = out[i].Debit.Sub(out[i].Credit).Mul(out[i].ExchangeRate).Round(moneyPlaces)
	}
	debitTotal = debitTotal.Round(moneyPlaces)
	creditTotal = creditTotal.Round(moneyPlaces)
	if !debitTotal.Equal(creditTotal) {
		return nil, &BalanceMismatchError{DebitTotal: debitTotal, CreditTotal: creditTotal}
	}

	// Structural zero-sum check per header group, independent of the monetary
	// balance. Only applies when header lines are present.
	if headerCount > 0 {
		groupSums := make(map[int]decimal.Decimal)
		groupOrder := make([]int, 0)
		for i := range out {
			key := out[i].LineNum
			if out[i].ParentLineNum != nil {
				key = *out[i].ParentLineNum
			}
			if _, seen := groupSums[key]; !seen {
				groupOrder = append(groupOrder, key)
			}
			groupSums[key] = groupSums[key].Add(out[i].Quantity)
		}
		for _, key := range groupOrder {
			sum := groupSums[key].Round(moneyPlaces)
			if !sum.IsZero() {
				return nil, &GroupingViolationError{GroupKey: key, Sum: sum}
			}
		}
	}

	return out, nil
}

// TotalDebits sums the debit side of a normalized line set. For a balanced
// journal this is its economic value.
func TotalDebits(lines []domain.LedgerLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Debit)
	}
	return total.Round(moneyPlaces)
}
