package domain

import "fmt"

// StateMachine is a one-step transition whitelist over a status type.
// Escape states are administrative statuses reachable from, and reaching,
// every status; transitions touching them require an elevated actor.
type StateMachine[S ~string] struct {
	Transitions map[S][]S
	Escape      []S
}

// IsEscape reports whether s is an administrative escape state.
func (m StateMachine[S]) IsEscape(s S) bool {
	for _, e := range m.Escape {
		if e == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is reachable in one step,
// including via the escape states.
func (m StateMachine[S]) CanTransition(from, to S) bool {
	if from == to {
		return false
	}
	if m.IsEscape(from) || m.IsEscape(to) {
		return true
	}
	for _, allowed := range m.Transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// RequiresElevation reports whether the transition uses an escape state and
// therefore needs an elevated actor.
func (m StateMachine[S]) RequiresElevation(from, to S) bool {
	return m.IsEscape(from) || m.IsEscape(to)
}

// Guard validates a requested transition for the given actor. It returns an
// InvalidTransitionError when the step is not whitelisted and ErrElevation
// semantics via the returned error when an escape transition is attempted
// without privilege.
func (m StateMachine[S]) Guard(docType string, from, to S, actor Actor) error {
	if !m.CanTransition(from, to) {
		return &InvalidTransitionError{DocType: docType, From: string(from), To: string(to)}
	}
	if m.RequiresElevation(from, to) && !actor.Elevated {
		return &InvalidTransitionError{DocType: docType, From: string(from), To: string(to), NeedsElevation: true}
	}
	return nil
}

// InvalidTransitionError reports a status change that is not in the allowed
// set for the document's current status.
type InvalidTransitionError struct {
	DocType        string
	From           string
	To             string
	NeedsElevation bool
}

func (e *InvalidTransitionError) Error() string {
	if e.NeedsElevation {
		return fmt.Sprintf("%s transition %s -> %s requires elevated privilege", e.DocType, e.From, e.To)
	}
	return fmt.Sprintf("invalid %s transition: %s -> %s", e.DocType, e.From, e.To)
}
