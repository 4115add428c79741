package core

import "time"

// ResolveStatus derives an invoice status from its due date: strictly past
// due (date-only comparison, time truncated to midnight) means Overdue,
// otherwise Unpaid. Draft is never produced here — it is reachable only by
// explicit assignment.
func ResolveStatus(dueDate, now time.Time) InvoiceStatus {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return StatusOverdue
	}
	return StatusUnpaid
}

// StatusInput is the tagged status choice passed into a save: either derive
// the status from the due date, or persist an explicit value verbatim.
// Explicit values are never re-derived on subsequent reads.
type StatusInput struct {
	status   InvoiceStatus
	explicit bool
}

// DeriveStatus requests due-date based derivation at save time.
func DeriveStatus() StatusInput { return StatusInput{} }

// ExplicitStatus requests that s be persisted exactly as given.
func ExplicitStatus(s InvoiceStatus) StatusInput {
	return StatusInput{status: s, explicit: true}
}

// Resolve returns the status to persist for the given due date.
func (si StatusInput) Resolve(dueDate, now time.Time) InvoiceStatus {
	if si.explicit {
		return si.status
	}
	return ResolveStatus(dueDate, now)
}

// IsExplicit reports whether the input carries a user-chosen status.
func (si StatusInput) IsExplicit() bool { return si.explicit }
