// Package errs defines the error taxonomy surfaced by the order workflow.
// Every error carries enough structure for a caller to render a specific
// message; none of them are fatal to the process.
package errs

import "fmt"

// ValidationError reports caller-supplied data that violates a precondition.
// The caller can recover by correcting the input; it is never retried
// automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidTransitionError reports a status change rejected by the order state
// machine.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// NotCancellableError reports a cancellation attempt on an order whose status
// no longer allows it.
type NotCancellableError struct {
	OrderID int64
	Status  string
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("order %d in status %s cannot be cancelled", e.OrderID, e.Status)
}

// ConflictError reports that a concurrent call mutated the same row first.
// The caller may re-read and retry.
type ConflictError struct {
	Entity string
	ID     int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently", e.Entity, e.ID)
}

// PersistenceError reports a storage failure. The transaction is guaranteed
// to have been rolled back before this error is surfaced.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
