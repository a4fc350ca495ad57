package rosterdomain

import "fmt"

// ValidationError rejects a request that is missing a required field before
// any mutation is built.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IneligibleAssignmentError rejects a candidate that fails the eligibility
// rules for the requested target. It is never silently coerced into a
// different placement.
type IneligibleAssignmentError struct {
	WrestlerID string
	Reason     string
}

func (e *IneligibleAssignmentError) Error() string {
	return fmt.Sprintf("wrestler %s is not eligible: %s", e.WrestlerID, e.Reason)
}

// ConsistencyViolation rejects a mutation that would break the
// roster/wrestler consistency invariant. The builder detects it before
// submission; it must never surface only as a storage conflict.
type ConsistencyViolation struct {
	Reason string
}

func (e *ConsistencyViolation) Error() string {
	return "consistency violation: " + e.Reason
}

// CommitFailure wraps a store rejection of a built transaction. The engine
// does not retry; the caller observes the failure with no partial effect.
type CommitFailure struct {
	Err error
}

func (e *CommitFailure) Error() string {
	return "commit failed: " + e.Err.Error()
}

func (e *CommitFailure) Unwrap() error { return e.Err }
