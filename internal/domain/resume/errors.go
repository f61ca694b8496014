package resume

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument is returned when the input is not a JSON object (or a
// JSON string holding one).
var ErrMalformedDocument = errors.New("resume: malformed document")

// MissingRequiredFieldError rejects a submission before any store write.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	if e == nil || e.Field == "" {
		return "resume: missing required field"
	}
	return fmt.Sprintf("resume: missing required field: %s", e.Field)
}

// UnresolvableEntityWarning records a list entry that was skipped because it
// lacked its identity anchor or had the wrong shape. It never aborts a
// submission.
type UnresolvableEntityWarning struct {
	Entity EntityKind `json:"entity"`
	Index  int        `json:"index"`
	Reason string     `json:"reason"`
}

func (w UnresolvableEntityWarning) Error() string {
	return fmt.Sprintf("resume: skipped %s[%d]: %s", w.Entity, w.Index, w.Reason)
}

type PersistenceOp string

const (
	OpOpenSession  PersistenceOp = "open_session"
	OpWriteResume  PersistenceOp = "write_resume"
	OpReadProfile  PersistenceOp = "read_profile"
	OpCloseSession PersistenceOp = "close_session"
	OpEnsureSchema PersistenceOp = "ensure_schema"
)

// PersistenceError is a store-level failure. The unit of work has been rolled
// back when it is returned; resubmitting the same document is safe.
type PersistenceError struct {
	Op        PersistenceOp
	Retryable bool
	Cause     error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return "resume: persistence failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("resume: persistence failed (op=%s retryable=%t): %v", e.Op, e.Retryable, e.Cause)
	}
	return fmt.Sprintf("resume: persistence failed (op=%s retryable=%t)", e.Op, e.Retryable)
}

func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
